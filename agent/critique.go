package agent

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"pitch_agent_service/workflow"
)

// DecodeCritique parses the critic's response into a structurally
// complete critique. All six sub-scores are always present (missing
// ones read as 0), overall is re-derived as the unweighted mean
// rounded to one decimal, and a malformed response degrades into a
// lowest-band FAIL critique instead of an error.
func DecodeCritique(raw string) workflow.Critique {
	doc := stripFences(raw)
	if !gjson.Valid(doc) {
		note := strings.TrimSpace(raw)
		if len(note) > 200 {
			note = note[:200]
		}
		return FallbackCritique("unparseable response: " + note)
	}

	scores := workflow.Scores{
		Clarity:    clampScore(gjson.Get(doc, "scores.clarity").Float()),
		Problem:    clampScore(gjson.Get(doc, "scores.problem").Float()),
		Solution:   clampScore(gjson.Get(doc, "scores.solution").Float()),
		Uniqueness: clampScore(gjson.Get(doc, "scores.uniqueness").Float()),
		Traction:   clampScore(gjson.Get(doc, "scores.traction").Float()),
		Engagement: clampScore(gjson.Get(doc, "scores.engagement").Float()),
	}

	c := workflow.Critique{
		Scores:     scores,
		Overall:    roundScore(scores.Mean()),
		Feedback:   gjson.Get(doc, "feedback").String(),
		Strengths:  stringSlice(gjson.Get(doc, "strengths")),
		Weaknesses: stringSlice(gjson.Get(doc, "weaknesses")),
	}
	if c.Feedback == "" {
		c.Feedback = "No feedback provided."
	}
	return c
}

// FallbackCritique is the degraded critique recorded when the backend
// failed or returned something unparseable: lowest score band,
// explicit FAIL, and a note explaining the fallback.
func FallbackCritique(reason string) workflow.Critique {
	return workflow.Critique{
		Scores:   workflow.Scores{},
		Overall:  0,
		Decision: workflow.DecisionFail,
		Feedback: fmt.Sprintf("Critique could not be produced; treating as failed review (%s).", reason),
		Weaknesses: []string{
			"Critique unavailable; pitch needs another review",
		},
	}
}

// stripFences removes a surrounding markdown code fence, which models
// add despite instructions.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func clampScore(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 10:
		return 10
	default:
		return v
	}
}

func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

func stringSlice(result gjson.Result) []string {
	if !result.IsArray() {
		return nil
	}
	var out []string
	result.ForEach(func(_, value gjson.Result) bool {
		if s := value.String(); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}
