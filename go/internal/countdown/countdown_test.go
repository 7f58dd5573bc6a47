package countdown

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemaining(t *testing.T) {
	target, err := ParseTarget("2026-03-05T00:00:00", time.UTC)
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want TimeLeft
	}{
		{"ninety seconds before", target.Add(-90 * time.Second), TimeLeft{0, 0, 1, 30}},
		{"sub-second remainder is dropped", target.Add(-1500 * time.Millisecond), TimeLeft{0, 0, 0, 1}},
		{"days and hours", target.Add(-(3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second)), TimeLeft{3, 4, 5, 6}},
		{"exactly at target", target, TimeLeft{}},
		{"after target", target.Add(time.Hour), TimeLeft{}},
		{"long after target", target.AddDate(1, 0, 0), TimeLeft{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Remaining(target, tt.now))
		})
	}
}

func TestParseTarget(t *testing.T) {
	nyc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	local, err := ParseTarget("2026-03-05T00:00:00", nyc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 5, 5, 0, 0, 0, time.UTC), local.UTC())

	withOffset, err := ParseTarget("2026-03-05T00:00:00Z", nyc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), withOffset.UTC())

	defaulted, err := ParseTarget(" 2026-03-05T00:00:00 ", nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, defaulted.Location())

	_, err = ParseTarget("March 5th", time.UTC)
	assert.Error(t, err)
}

func TestTimeLeft_StringAndDone(t *testing.T) {
	assert.Equal(t, "00:00:01:30", TimeLeft{0, 0, 1, 30}.String())
	assert.Equal(t, "120:23:59:09", TimeLeft{120, 23, 59, 9}.String())

	assert.True(t, TimeLeft{}.Done())
	assert.False(t, TimeLeft{Seconds: 1}.Done())
}
