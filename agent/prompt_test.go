package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pitch_agent_service/search"
	"pitch_agent_service/workflow"
)

func TestBuildSearchQueryTruncatesDescription(t *testing.T) {
	short := BuildSearchQuery("a meal planner")
	assert.Equal(t, "a meal planner market analysis competitors", short)

	long := strings.Repeat("x", 300)
	q := BuildSearchQuery(long)
	assert.Len(t, q, 100+len(" market analysis competitors"))
	assert.True(t, strings.HasSuffix(q, " market analysis competitors"))
}

func TestBuildContextPromptCapsSearchResults(t *testing.T) {
	snippets := []search.Snippet{
		{Title: "A", Text: strings.Repeat("a", 800)},
		{Title: "B", Text: strings.Repeat("b", 800)},
	}
	p := BuildContextPrompt("a meal planner", snippets)

	assert.Contains(t, p.User, "a meal planner")
	// Only the first 1000 characters of research text make it in.
	assert.NotContains(t, p.User, strings.Repeat("b", 700))
	assert.Equal(t, contextTemperature, p.Temperature)
}

func TestBuildContextPromptWithoutResults(t *testing.T) {
	p := BuildContextPrompt("a meal planner", nil)
	assert.Contains(t, p.User, "No search results available.")
}

func TestBuildRefinerPromptPrioritizesHumanFeedback(t *testing.T) {
	critique := workflow.Critique{
		Feedback:   "too vague",
		Weaknesses: []string{"no numbers"},
	}

	p := BuildRefinerPrompt("draft", critique, "focus on enterprise buyers")

	assert.Contains(t, p.User, "too vague")
	assert.Contains(t, p.User, "no numbers")
	assert.Contains(t, p.User, "highest priority")
	assert.Contains(t, p.User, "focus on enterprise buyers")
	assert.Equal(t, refinerTemperature, p.Temperature)

	bare := BuildRefinerPrompt("draft", critique, "")
	assert.NotContains(t, bare.User, "highest priority")
}
