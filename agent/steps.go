package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pitch_agent_service/search"
	"pitch_agent_service/workflow"
)

// DefaultCallTimeout bounds each external call made by a step.
const DefaultCallTimeout = 60 * time.Second

// Config wires the collaborators shared by the five steps.
type Config struct {
	LLM     LLMClient
	Search  search.Searcher
	Gate    workflow.ScoreGate
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewSteps builds the five workflow steps from one config.
func NewSteps(cfg Config) (workflow.Steps, error) {
	if cfg.LLM == nil {
		return workflow.Steps{}, errors.New("agent: llm client is required")
	}
	if cfg.Search == nil {
		return workflow.Steps{}, errors.New("agent: searcher is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultCallTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	base := base{llm: cfg.LLM, timeout: cfg.Timeout, logger: cfg.Logger}
	return workflow.Steps{
		Context:   &ContextStep{base: base, search: cfg.Search},
		Generator: &GeneratorStep{base: base},
		Critic:    &CriticStep{base: base, gate: cfg.Gate},
		Refiner:   &RefinerStep{base: base},
		Readiness: &ReadinessStep{base: base},
	}, nil
}

type base struct {
	llm     LLMClient
	timeout time.Duration
	logger  *slog.Logger
}

// complete runs one bounded LLM call. The returned error is non-nil
// only when the parent context is gone; per-call timeouts and backend
// failures surface as ("", nil, reason) so steps can degrade.
func (b base) complete(parent context.Context, prompt Prompt) (text string, reason string, err error) {
	if e := parent.Err(); e != nil {
		return "", "", e
	}
	ctx, cancel := context.WithTimeout(parent, b.timeout)
	defer cancel()
	text, e := b.llm.Complete(ctx, prompt)
	if e != nil {
		if parent.Err() != nil {
			return "", "", parent.Err()
		}
		return "", e.Error(), nil
	}
	return text, "", nil
}

// ContextStep researches market context for the description. A failed
// search or generation call degrades to partial or empty context; the
// workflow proceeds regardless.
type ContextStep struct {
	base
	search search.Searcher
}

func (s *ContextStep) Name() string { return "context" }

func (s *ContextStep) Execute(ctx context.Context, state workflow.PitchState) (workflow.PitchState, error) {
	if err := ctx.Err(); err != nil {
		return state, err
	}
	searchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	snippets, err := s.search.Search(searchCtx, BuildSearchQuery(state.Description))
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return state, ctx.Err()
		}
		s.logger.Warn("web search failed, continuing without results", "error", err)
		snippets = nil
	}

	text, reason, err := s.complete(ctx, BuildContextPrompt(state.Description, snippets))
	if err != nil {
		return state, err
	}
	if reason != "" {
		s.logger.Warn("context generation failed, proceeding with empty context", "reason", reason)
	}
	state.Context = strings.TrimSpace(text)
	return state, nil
}

// GeneratorStep produces the first pitch draft from the description
// and context. It never consumes a critique.
type GeneratorStep struct {
	base
}

func (s *GeneratorStep) Name() string { return "generator" }

func (s *GeneratorStep) Execute(ctx context.Context, state workflow.PitchState) (workflow.PitchState, error) {
	text, reason, err := s.complete(ctx, BuildGeneratorPrompt(state.Description, state.Context))
	if err != nil {
		return state, err
	}
	pitch := strings.TrimSpace(text)
	if pitch == "" {
		if reason != "" {
			s.logger.Warn("pitch generation failed, using stub draft", "reason", reason)
		}
		pitch = fallbackPitch(state.Description)
	}
	state.Pitch = pitch
	return state, nil
}

// fallbackPitch keeps the workflow moving when the backend produced
// nothing: a minimal draft the critic will fail and the refiner can
// work from.
func fallbackPitch(description string) string {
	return fmt.Sprintf("We are building the following product: %s. "+
		"It solves a real problem for a well-defined audience and we are seeking support to grow it.",
		strings.TrimSpace(description))
}

// CriticStep evaluates the pitch into a structurally complete critique
// and applies the score gate to set the decision.
type CriticStep struct {
	base
	gate workflow.ScoreGate
}

func (s *CriticStep) Name() string { return "critic" }

func (s *CriticStep) Execute(ctx context.Context, state workflow.PitchState) (workflow.PitchState, error) {
	text, reason, err := s.complete(ctx, BuildCriticPrompt(state.Pitch))
	if err != nil {
		return state, err
	}
	var critique workflow.Critique
	if reason != "" {
		s.logger.Warn("critique call failed, recording fallback critique", "reason", reason)
		critique = FallbackCritique("backend unavailable: " + reason)
	} else {
		critique = DecodeCritique(text)
	}
	critique.Decision = s.gate.Decide(critique)
	state.Critique = critique
	return state, nil
}

// RefinerStep rewrites the pitch from the critique and optional human
// feedback. The new draft strictly replaces the old one; a failed call
// keeps the prior draft.
type RefinerStep struct {
	base
}

func (s *RefinerStep) Name() string { return "refiner" }

func (s *RefinerStep) Execute(ctx context.Context, state workflow.PitchState) (workflow.PitchState, error) {
	text, reason, err := s.complete(ctx, BuildRefinerPrompt(state.Pitch, state.Critique, state.HumanFeedback))
	if err != nil {
		return state, err
	}
	pitch := strings.TrimSpace(text)
	if pitch == "" {
		if reason != "" {
			s.logger.Warn("refinement failed, keeping current pitch", "reason", reason)
		}
		return state, nil
	}
	state.Pitch = pitch
	return state, nil
}

// ReadinessStep produces the final package from the approved pitch and
// context, with placeholders for anything the backend left out.
type ReadinessStep struct {
	base
}

func (s *ReadinessStep) Name() string { return "readiness" }

func (s *ReadinessStep) Execute(ctx context.Context, state workflow.PitchState) (workflow.PitchState, error) {
	text, reason, err := s.complete(ctx, BuildReadinessPrompt(state.Pitch, state.Context))
	if err != nil {
		return state, err
	}
	if reason != "" {
		s.logger.Warn("final package call failed, using placeholder package", "reason", reason)
		state.FinalPackage = FallbackFinalPackage(state.Pitch)
		return state, nil
	}
	state.FinalPackage = DecodeFinalPackage(text, state.Pitch)
	return state, nil
}
