package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreGateDecide(t *testing.T) {
	gate := NewScoreGate(0)

	tests := []struct {
		name    string
		overall float64
		want    Decision
	}{
		{"well above threshold", 9.2, DecisionPass},
		{"just above threshold", 7.6, DecisionPass},
		{"exact boundary passes", 7.5, DecisionPass},
		{"just below threshold", 7.4, DecisionFail},
		{"well below threshold", 3.0, DecisionFail},
		{"zero", 0, DecisionFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gate.Decide(Critique{Overall: tt.overall})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreGateDefaults(t *testing.T) {
	assert.InDelta(t, DefaultPassThreshold, NewScoreGate(0).Threshold(), 1e-9)
	assert.InDelta(t, DefaultPassThreshold, NewScoreGate(-1).Threshold(), 1e-9)
	assert.InDelta(t, 8.0, NewScoreGate(8.0).Threshold(), 1e-9)
}

func TestScoreGateCustomThreshold(t *testing.T) {
	gate := NewScoreGate(6.0)
	assert.Equal(t, DecisionPass, gate.Decide(Critique{Overall: 6.0}))
	assert.Equal(t, DecisionFail, gate.Decide(Critique{Overall: 5.9}))
}
