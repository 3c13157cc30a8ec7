package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParsesInstantAnswer(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("no_html"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Heading": "Meal planning",
			"AbstractText": "Meal planning is the act of planning meals.",
			"RelatedTopics": [
				{"Text": "Competitor A makes meal plans."},
				{"Text": ""},
				{"Topics": [{"Text": "Nested competitor B."}]}
			]
		}`))
	}))
	defer srv.Close()

	client := NewDuckDuckGo(srv.Client(), srv.URL, 5)
	snippets, err := client.Search(context.Background(), "meal planner market")
	require.NoError(t, err)

	assert.Equal(t, "meal planner market", gotQuery)
	require.Len(t, snippets, 3)
	assert.Equal(t, "Meal planning", snippets[0].Title)
	assert.Equal(t, "Competitor A makes meal plans.", snippets[1].Text)
	assert.Equal(t, "Nested competitor B.", snippets[2].Text)
}

func TestSearchCapsSnippetCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"AbstractText": "abstract",
			"RelatedTopics": [
				{"Text": "one"}, {"Text": "two"}, {"Text": "three"}, {"Text": "four"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewDuckDuckGo(srv.Client(), srv.URL, 2)
	snippets, err := client.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, snippets, 2)
}

func TestSearchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewDuckDuckGo(srv.Client(), srv.URL, 5)
	_, err := client.Search(context.Background(), "q")
	assert.Error(t, err)
}

func TestSearchHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewDuckDuckGo(srv.Client(), srv.URL, 5)
	_, err := client.Search(ctx, "q")
	assert.Error(t, err)
}
