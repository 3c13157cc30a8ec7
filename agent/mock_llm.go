package agent

import (
	"context"
	"strings"
)

// MockLLM is a deterministic placeholder backend for local runs with
// no API key. It recognizes each agent by its system prompt and emits
// a plausible, well-formed response; the mock critique always passes
// so the offline flow reaches the approval checkpoint in one pass.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	switch {
	case strings.Contains(prompt.System, "pitch critic"):
		return `{
  "scores": {"clarity": 8, "problem": 8, "solution": 8, "uniqueness": 8, "traction": 8, "engagement": 8},
  "overall_score": 8.0,
  "decision": "PASS",
  "feedback": "Mock critique: clear structure with concrete traction.",
  "strengths": ["clear problem framing"],
  "weaknesses": ["metrics could be more specific"]
}`, nil
	case strings.Contains(prompt.System, "final pitch package"):
		return `{
  "elevator_pitch": "Mock elevator pitch generated locally.",
  "executive_summary": "Mock executive summary covering problem, solution, and traction.",
  "problem_statement": "Mock problem statement.",
  "solution": "Mock solution description.",
  "unique_value_proposition": "Mock unique value proposition.",
  "competitive_advantage": ["mock advantage"],
  "team_highlights": "Mock team highlights.",
  "key_talking_points": ["mock talking point"]
}`, nil
	case strings.Contains(prompt.System, "research expert"):
		return "Mock market context: the space is growing, competitors are " +
			"generic, and the target audience values speed and simplicity.", nil
	case strings.Contains(prompt.System, "refinement expert"):
		return "Mock refined pitch: sharper problem statement, concrete " +
			"metrics, and a clear ask, incorporating the review feedback.", nil
	default:
		var sb strings.Builder
		sb.WriteString("Mock pitch: we built a product that solves a painful, ")
		sb.WriteString("expensive problem for a large audience. Early users love it ")
		sb.WriteString("and usage doubles month over month. We are raising to scale ")
		sb.WriteString("distribution.\n\nBased on: ")
		sb.WriteString(prompt.User)
		return sb.String(), nil
	}
}
