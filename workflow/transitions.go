package workflow

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when an event is not legal for the
// session's current phase, including approval calls outside
// awaiting_approval.
var ErrInvalidTransition = errors.New("workflow: invalid transition")

// Event names a cause of a phase change.
type Event string

const (
	EventContextGathered  Event = "context_gathered"
	EventPitchGenerated   Event = "pitch_generated"
	EventCritiqueRecorded Event = "critique_recorded"
	EventAutoRefine       Event = "auto_refine"
	EventSuspend          Event = "suspend_for_approval"
	EventReject           Event = "human_reject"
	EventApprove          Event = "human_approve"
	EventFinalize         Event = "finalize"
	EventCap              Event = "iteration_cap"
)

// transitions is the complete workflow graph: phase × event → next
// phase. Anything absent from the table is an invalid transition.
var transitions = map[Phase]map[Event]Phase{
	PhaseStart: {
		EventContextGathered: PhaseContextDone,
	},
	PhaseContextDone: {
		EventPitchGenerated: PhaseGenerated,
	},
	PhaseGenerated: {
		EventCritiqueRecorded: PhaseCritiqued,
	},
	PhaseCritiqued: {
		EventAutoRefine: PhaseAutoRefining,
		EventSuspend:    PhaseAwaitingApproval,
		EventCap:        PhaseCapped,
	},
	PhaseAutoRefining: {
		EventCritiqueRecorded: PhaseCritiqued,
	},
	PhaseAwaitingApproval: {
		EventReject:  PhaseRefining,
		EventApprove: PhaseReadyForFinal,
		// Guards the pathological case of a session suspended at the
		// iteration budget; normally the cap fires at critique time.
		EventCap: PhaseCapped,
	},
	PhaseRefining: {
		EventCritiqueRecorded: PhaseCritiqued,
	},
	PhaseReadyForFinal: {
		EventFinalize: PhaseDone,
	},
}

// Next resolves the phase reached by applying ev in phase p.
func (p Phase) Next(ev Event) (Phase, error) {
	next, ok := transitions[p][ev]
	if !ok {
		return p, fmt.Errorf("%w: %s in phase %s", ErrInvalidTransition, ev, p)
	}
	return next, nil
}
