package agent

import (
	"fmt"
	"strings"

	"pitch_agent_service/search"
	"pitch_agent_service/workflow"
)

// pitchTemplate is the proven structure injected into the context
// prompt.
const pitchTemplate = `PITCH STRUCTURE:
1. Hook: Grab attention with the problem
2. Solution: What you built and how it works
3. Unique Value: Why you're different
4. Traction: Evidence it works
5. Ask: What you need`

// searchResultLimit caps how much raw search text reaches the prompt.
const searchResultLimit = 1000

// BuildSearchQuery derives the market-research query from the product
// description.
func BuildSearchQuery(description string) string {
	head := description
	if len(head) > 100 {
		head = head[:100]
	}
	return head + " market analysis competitors"
}

// BuildContextPrompt asks for market context around the description.
func BuildContextPrompt(description string, snippets []search.Snippet) Prompt {
	var results strings.Builder
	for _, s := range snippets {
		if s.Title != "" {
			results.WriteString(s.Title)
			results.WriteString(": ")
		}
		results.WriteString(s.Text)
		results.WriteString("\n")
	}
	research := strings.TrimSpace(results.String())
	if len(research) > searchResultLimit {
		research = research[:searchResultLimit]
	}
	if research == "" {
		research = "No search results available."
	}

	return Prompt{
		System: "You are a startup research expert. Analyze the MVP description and " +
			"search results to provide comprehensive context for creating a compelling pitch.",
		User: fmt.Sprintf(`MVP Description: %s

Market Research Results:
%s

Pitch Template to Follow:
%s

Provide comprehensive context including market insights, competitive landscape, target audience, and key value propositions to emphasize.`,
			description, research, pitchTemplate),
		Temperature: contextTemperature,
	}
}

// BuildGeneratorPrompt asks for the first pitch draft. It deliberately
// takes no critique: generation is first-pass only.
func BuildGeneratorPrompt(description, context string) Prompt {
	return Prompt{
		System: `You are an expert pitch writer. Create a compelling, concise pitch (150-250 words) that:
- Clearly articulates the problem and solution
- Highlights the unique value proposition
- Includes specific, measurable outcomes
- Is engaging and memorable`,
		User: fmt.Sprintf("MVP Description: %s\n\nResearch Context: %s\n\nGenerate a compelling pitch.",
			description, context),
		Temperature: generatorTemperature,
	}
}

// BuildCriticPrompt asks for a structured critique of the pitch.
func BuildCriticPrompt(pitch string) Prompt {
	return Prompt{
		System: `You are a tough but fair pitch critic (think YC partner or top VC).

Evaluate the pitch on 6 criteria, each out of 10:
1. CLARITY: Is it immediately clear what they do?
2. PROBLEM: Is the problem compelling and relatable?
3. SOLUTION: Is the solution clearly explained?
4. UNIQUENESS: What makes this different or better?
5. TRACTION: Any proof it works?
6. ENGAGEMENT: Is it memorable and compelling?

Return ONLY valid JSON (no markdown, no backticks):
{
    "scores": {"clarity": X, "problem": X, "solution": X, "uniqueness": X, "traction": X, "engagement": X},
    "overall_score": X.X,
    "decision": "PASS or FAIL",
    "feedback": "detailed feedback",
    "strengths": ["strength 1", "strength 2"],
    "weaknesses": ["weakness 1", "weakness 2"]
}

PASS if overall_score >= 7.5, otherwise FAIL.`,
		User:        fmt.Sprintf("Critique this pitch:\n\n%s", pitch),
		Temperature: criticTemperature,
	}
}

// BuildRefinerPrompt asks for an improved pitch that replaces the prior
// draft. Human feedback, when present, takes priority over the
// critique.
func BuildRefinerPrompt(pitch string, critique workflow.Critique, humanFeedback string) Prompt {
	var user strings.Builder
	fmt.Fprintf(&user, "Original Pitch:\n%s\n\nCritique Feedback:\n%s\n", pitch, critique.Feedback)
	if len(critique.Weaknesses) > 0 {
		fmt.Fprintf(&user, "\nWeaknesses to address:\n%s\n", strings.Join(critique.Weaknesses, ", "))
	}
	if humanFeedback != "" {
		fmt.Fprintf(&user, "\nUser Feedback (highest priority):\n%s\n", humanFeedback)
	}
	user.WriteString("\nCreate a substantially improved version. Output only the new pitch.")

	return Prompt{
		System: `You are a pitch refinement expert.

Take the original pitch and the critique, then create an improved version that:
- Addresses all weaknesses mentioned
- Maintains the strengths
- Incorporates the feedback precisely
- Stays concise and impactful

Make substantial improvements, don't just tweak words.`,
		User:        user.String(),
		Temperature: refinerTemperature,
	}
}

// BuildReadinessPrompt asks for the structured final pitch package.
func BuildReadinessPrompt(pitch, context string) Prompt {
	return Prompt{
		System: `Create a comprehensive final pitch package. Return ONLY valid JSON (no markdown, no backticks) with this structure:

{
  "elevator_pitch": "One sentence pitch (30-40 words)",
  "executive_summary": "2-3 paragraph overview",
  "problem_statement": "Clear description of the problem",
  "solution": "How your product solves it",
  "unique_value_proposition": "What makes you different",
  "traction_metrics": {"users": "number", "revenue": "amount", "growth": "percentage", "other_metrics": ["metric1"]},
  "market_opportunity": {"tam": "Total addressable market", "sam": "Serviceable addressable market", "target_segment": "Who you're targeting"},
  "business_model": {"revenue_streams": ["stream1"], "pricing": "pricing strategy", "unit_economics": "CAC, LTV, margins"},
  "competitive_advantage": ["advantage1", "advantage2"],
  "team_highlights": "Brief team credentials",
  "funding_ask": {"amount": "how much", "use_of_funds": {"category": "percentage"}, "milestones": ["milestone1"]},
  "key_talking_points": ["point1", "point2"],
  "anticipated_questions": [{"question": "question text", "answer": "concise answer"}],
  "delivery_tips": {"tone": "recommended tone", "pacing": "timing guidance", "emphasis_points": ["what to emphasize"]}
}`,
		User: fmt.Sprintf("Approved Pitch:\n%s\n\nResearch Context:\n%s\n\nCreate the structured final pitch package in JSON format.",
			pitch, context),
		Temperature: readinessTemperature,
	}
}
