// Package search wraps the web-search collaborator used to gather
// market context. A failed or empty search is never fatal; callers
// proceed with whatever snippets came back.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.duckduckgo.com/"

// Snippet is one search result fragment.
type Snippet struct {
	Title string
	Text  string
}

// Searcher runs a single web-search query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Snippet, error)
}

// DuckDuckGo queries the DuckDuckGo Instant Answer API.
type DuckDuckGo struct {
	client      *http.Client
	baseURL     string
	maxSnippets int
}

// NewDuckDuckGo builds a client. A nil http.Client gets a 15s timeout;
// maxSnippets <= 0 defaults to 5.
func NewDuckDuckGo(client *http.Client, baseURL string, maxSnippets int) *DuckDuckGo {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if maxSnippets <= 0 {
		maxSnippets = 5
	}
	return &DuckDuckGo{client: client, baseURL: baseURL, maxSnippets: maxSnippets}
}

type instantAnswerResp struct {
	Heading       string         `json:"Heading"`
	AbstractText  string         `json:"AbstractText"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

type relatedTopic struct {
	Text   string         `json:"Text"`
	Topics []relatedTopic `json:"Topics"`
}

// Search returns up to maxSnippets results for the query.
func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]Snippet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %d", resp.StatusCode)
	}

	var data instantAnswerResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}

	var out []Snippet
	if strings.TrimSpace(data.AbstractText) != "" {
		out = append(out, Snippet{Title: data.Heading, Text: data.AbstractText})
	}
	out = appendTopics(out, data.RelatedTopics, d.maxSnippets)
	return out, nil
}

func appendTopics(out []Snippet, topics []relatedTopic, limit int) []Snippet {
	for _, t := range topics {
		if len(out) >= limit {
			break
		}
		if strings.TrimSpace(t.Text) != "" {
			out = append(out, Snippet{Text: t.Text})
			continue
		}
		out = appendTopics(out, t.Topics, limit)
	}
	return out
}
