package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterationPolicyNextAction(t *testing.T) {
	policy := NewIterationPolicy()

	tests := []struct {
		name     string
		decision Decision
		auto     int
		total    int
		want     Action
	}{
		{"fail with budget refines", DecisionFail, 0, 0, ActionAutoRefine},
		{"fail mid budget refines", DecisionFail, 2, 2, ActionAutoRefine},
		{"fail with auto budget exhausted suspends", DecisionFail, 3, 3, ActionSuspend},
		{"pass suspends immediately", DecisionPass, 0, 0, ActionSuspend},
		{"pass suspends even with auto budget left", DecisionPass, 1, 1, ActionSuspend},
		{"total cap beats pass", DecisionPass, 3, 10, ActionCap},
		{"total cap beats fail", DecisionFail, 2, 10, ActionCap},
		{"total over cap still caps", DecisionFail, 3, 11, ActionCap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := PitchState{
				Critique:            Critique{Decision: tt.decision},
				AutoRefineCount:     tt.auto,
				TotalIterationCount: tt.total,
			}
			assert.Equal(t, tt.want, policy.NextAction(state))
		})
	}
}

func TestIterationPolicyAutoBudgetProperty(t *testing.T) {
	// Under any run of consecutive FAIL critiques the policy stops
	// recommending auto-refines once the auto budget is spent, and the
	// counter never exceeds the budget.
	policy := NewIterationPolicy()
	state := PitchState{Critique: Critique{Decision: DecisionFail}}

	for i := 0; i < 20; i++ {
		action := policy.NextAction(state)
		if action != ActionAutoRefine {
			break
		}
		state.AutoRefineCount++
		state.TotalIterationCount++
	}
	assert.Equal(t, MaxAutoRefines, state.AutoRefineCount)
	assert.Equal(t, ActionSuspend, policy.NextAction(state))
}

func TestIterationPolicyAllowHumanRefine(t *testing.T) {
	policy := NewIterationPolicy()
	assert.True(t, policy.AllowHumanRefine(PitchState{TotalIterationCount: 9}))
	assert.False(t, policy.AllowHumanRefine(PitchState{TotalIterationCount: 10}))
}
