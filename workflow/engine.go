package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyDescription is returned when a run is started without input.
var ErrEmptyDescription = errors.New("workflow: mvp description is required")

// Step is one discrete agent transformation. Execute takes the state by
// value and returns an updated copy; backend failures are absorbed into
// a degraded-but-valid state, so a non-nil error means the step could
// not run at all (typically context cancellation) and the session must
// stay exactly where it was.
type Step interface {
	Name() string
	Execute(ctx context.Context, state PitchState) (PitchState, error)
}

// Steps bundles the five agents of the pitch workflow.
type Steps struct {
	Context   Step
	Generator Step
	Critic    Step
	Refiner   Step
	Readiness Step
}

func (s Steps) validate() error {
	if s.Context == nil || s.Generator == nil || s.Critic == nil || s.Refiner == nil || s.Readiness == nil {
		return errors.New("workflow: all five steps are required")
	}
	return nil
}

// Engine drives a session through the workflow graph: it sequences
// steps, consults the score gate and iteration policy, suspends at the
// human-approval checkpoint, and persists state through the store.
type Engine struct {
	steps  Steps
	gate   ScoreGate
	policy IterationPolicy
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewEngine wires the workflow engine.
func NewEngine(steps Steps, gate ScoreGate, policy IterationPolicy, store Store, logger *slog.Logger) (*Engine, error) {
	if err := steps.validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("workflow: session store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		steps:  steps,
		gate:   gate,
		policy: policy,
		store:  store,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Start creates a session and runs it synchronously through context
// research, generation, and the critique/auto-refine loop until it
// suspends for approval or hits the iteration cap. Intermediate phases
// are not observable from outside; the session is persisted once, at
// the suspension point.
func (e *Engine) Start(ctx context.Context, description string) (*Session, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	now := e.now()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		State:     PitchState{Description: description, Phase: PhaseStart},
	}
	if err := e.store.Put(sess); err != nil {
		return nil, err
	}
	if err := e.store.Acquire(sess.ID); err != nil {
		return nil, err
	}
	defer e.store.Release(sess.ID)

	state := sess.State.Clone()
	state, err := e.runStep(ctx, e.steps.Context, state, EventContextGathered)
	if err != nil {
		return nil, err
	}
	state, err = e.runStep(ctx, e.steps.Generator, state, EventPitchGenerated)
	if err != nil {
		return nil, err
	}
	state, err = e.critiqueLoop(ctx, state)
	if err != nil {
		return nil, err
	}
	return e.commit(sess, state)
}

// SubmitApproval resumes a session suspended at the approval
// checkpoint. Approving runs the readiness agent and finishes the run;
// rejecting applies the feedback through one refinement + critique
// cycle and lands back on the checkpoint, or on the cap.
func (e *Engine) SubmitApproval(ctx context.Context, id string, approved bool, feedback string) (*Session, error) {
	if err := e.store.Acquire(id); err != nil {
		return nil, err
	}
	defer e.store.Release(id)

	sess, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.State.Phase != PhaseAwaitingApproval {
		return nil, fmt.Errorf("%w: approval submitted in phase %s", ErrInvalidTransition, sess.State.Phase)
	}

	state := sess.State.Clone()
	if approved {
		if state, err = apply(state, EventApprove); err != nil {
			return nil, err
		}
		if state, err = e.runStep(ctx, e.steps.Readiness, state, EventFinalize); err != nil {
			return nil, err
		}
		return e.commit(sess, state)
	}

	if !e.policy.AllowHumanRefine(state) {
		// Should not arise: a session at the budget caps at critique
		// time. Covered by the awaiting_approval → capped table entry.
		if state, err = e.capRun(ctx, state); err != nil {
			return nil, err
		}
		return e.commit(sess, state)
	}

	state.HumanFeedback = feedback
	if state, err = apply(state, EventReject); err != nil {
		return nil, err
	}
	state.TotalIterationCount++
	next, err := e.steps.Refiner.Execute(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("workflow: %s step: %w", e.steps.Refiner.Name(), err)
	}
	next.HumanFeedback = ""
	next.Phase = state.Phase
	if state, err = e.runCritic(ctx, next); err != nil {
		return nil, err
	}

	// Exactly one cycle per rejection: land back on the checkpoint or
	// the cap, never re-enter the auto-refine loop.
	if state.TotalIterationCount >= e.policy.TotalMax {
		state, err = e.capRun(ctx, state)
	} else {
		state, err = apply(state, EventSuspend)
	}
	if err != nil {
		return nil, err
	}
	return e.commit(sess, state)
}

// Status returns a snapshot of the session's current state.
func (e *Engine) Status(id string) (*Session, error) {
	return e.store.Get(id)
}

// Sessions lists snapshots of every live session.
func (e *Engine) Sessions() []*Session {
	return e.store.List()
}

// Drop removes a session. Dropping an unknown id is not an error.
func (e *Engine) Drop(id string) {
	e.store.Delete(id)
}

// critiqueLoop runs critic evaluations and bounded automatic
// refinements until the run suspends for approval or caps out.
func (e *Engine) critiqueLoop(ctx context.Context, state PitchState) (PitchState, error) {
	for {
		var err error
		state, err = e.runCritic(ctx, state)
		if err != nil {
			return state, err
		}
		switch e.policy.NextAction(state) {
		case ActionCap:
			return e.capRun(ctx, state)
		case ActionAutoRefine:
			state.AutoRefineCount++
			state.TotalIterationCount++
			e.logger.Info("auto-refining pitch",
				"auto_refine_count", state.AutoRefineCount,
				"iteration_count", state.TotalIterationCount)
			state, err = e.runStep(ctx, e.steps.Refiner, state, EventAutoRefine)
			if err != nil {
				return state, err
			}
		default:
			return apply(state, EventSuspend)
		}
	}
}

// capRun terminates a run that exhausted its iteration budget, still
// producing a best-effort final package from the last pitch.
func (e *Engine) capRun(ctx context.Context, state PitchState) (PitchState, error) {
	phase, err := state.Phase.Next(EventCap)
	if err != nil {
		return state, err
	}
	next, err := e.steps.Readiness.Execute(ctx, state)
	if err != nil {
		return state, fmt.Errorf("workflow: %s step: %w", e.steps.Readiness.Name(), err)
	}
	next.Phase = phase
	if next.FinalPackage != nil {
		next.FinalPackage.Capped = true
	}
	e.logger.Info("iteration budget exhausted, capping run",
		"iteration_count", next.TotalIterationCount)
	return next, nil
}

// runCritic runs the critic step and re-derives the decision through
// the score gate, so the gate verdict never depends on what a backend
// happened to echo back.
func (e *Engine) runCritic(ctx context.Context, state PitchState) (PitchState, error) {
	next, err := e.runStep(ctx, e.steps.Critic, state, EventCritiqueRecorded)
	if err != nil {
		return state, err
	}
	next.Critique.Decision = e.gate.Decide(next.Critique)
	return next, nil
}

// runStep executes one agent and applies its phase transition. On error
// the incoming state is returned untouched.
func (e *Engine) runStep(ctx context.Context, step Step, state PitchState, ev Event) (PitchState, error) {
	next, err := step.Execute(ctx, state)
	if err != nil {
		return state, fmt.Errorf("workflow: %s step: %w", step.Name(), err)
	}
	next.Phase = state.Phase
	if next, err = apply(next, ev); err != nil {
		return state, err
	}
	e.logger.Debug("step complete", "step", step.Name(), "phase", next.Phase)
	return next, nil
}

// commit persists the new state and returns a snapshot.
func (e *Engine) commit(sess *Session, state PitchState) (*Session, error) {
	sess.State = state
	sess.UpdatedAt = e.now()
	if err := e.store.Put(sess); err != nil {
		return nil, err
	}
	e.logger.Info("session updated",
		"session_id", sess.ID,
		"phase", state.Phase,
		"decision", state.Critique.Decision,
		"iteration_count", state.TotalIterationCount)
	return sess.Clone(), nil
}

func apply(state PitchState, ev Event) (PitchState, error) {
	phase, err := state.Phase.Next(ev)
	if err != nil {
		return state, err
	}
	state.Phase = phase
	return state, nil
}
