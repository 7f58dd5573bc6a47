package leaderboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestState_Age(t *testing.T) {
	now := testEpoch.Add(time.Minute)

	_, ok := State{}.Age(now)
	assert.False(t, ok)

	age, ok := State{LastUpdated: testEpoch}.Age(now)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, age)

	age, ok = State{LastUpdated: now.Add(time.Second)}.Age(now)
	assert.True(t, ok)
	assert.Zero(t, age, "clock skew clamps to zero")
}

func TestState_IsStale(t *testing.T) {
	now := testEpoch.Add(20 * time.Second)
	threshold := 30 * time.Second

	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"fresh", State{LastUpdated: testEpoch}, false},
		{"never fetched", State{}, true},
		{"old", State{LastUpdated: testEpoch.Add(-time.Minute)}, true},
		{"fresh but last refresh failed", State{LastUpdated: testEpoch, LastError: errors.New("boom")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.IsStale(now, threshold))
		})
	}
}

func TestState_ErrorMessage(t *testing.T) {
	assert.Empty(t, State{}.ErrorMessage())
	assert.Equal(t, "boom", State{LastError: errors.New("boom")}.ErrorMessage())
}
