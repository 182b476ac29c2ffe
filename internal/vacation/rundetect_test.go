package vacation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awayDays(keys ...string) map[string]*DaySummary {
	days := make(map[string]*DaySummary, len(keys))
	for _, key := range keys {
		days[key] = &DaySummary{Day: key, AwayCandidate: true}
	}
	return days
}

func TestNewRunDetector(t *testing.T) {
	t.Parallel()

	_, err := NewRunDetector(RunDetectorConfig{MinNights: 5, MaxNights: 2})
	assert.Error(t, err)

	_, err = NewRunDetector(RunDetectorConfig{MinNights: 1, MaxNights: 3, MaxBridgeDays: -1})
	assert.Error(t, err)

	_, err = NewRunDetector(RunDetectorConfig{})
	assert.NoError(t, err)
}

func TestRunDetectorDetect(t *testing.T) {
	t.Parallel()

	t.Run("nil home yields nothing", func(t *testing.T) {
		t.Parallel()
		r, err := NewRunDetector(RunDetectorConfig{})
		require.NoError(t, err)
		assert.Nil(t, r.Detect(awayDays("2024-07-01"), nil))
	})

	t.Run("consecutive away days form a run", func(t *testing.T) {
		t.Parallel()
		r, err := NewRunDetector(RunDetectorConfig{})
		require.NoError(t, err)

		runs := r.Detect(awayDays("2024-07-01", "2024-07-02", "2024-07-03"), berlinHome())
		require.Len(t, runs, 1)
		assert.Equal(t, []string{"2024-07-01", "2024-07-02", "2024-07-03"}, runs[0])
	})

	t.Run("single-day hole is bridged with a synthetic key", func(t *testing.T) {
		t.Parallel()
		r, err := NewRunDetector(RunDetectorConfig{})
		require.NoError(t, err)

		runs := r.Detect(awayDays("2024-07-01", "2024-07-02", "2024-07-04"), berlinHome())
		require.Len(t, runs, 1)
		assert.Equal(t, []string{"2024-07-01", "2024-07-02", "2024-07-03", "2024-07-04"}, runs[0])
	})

	t.Run("hole wider than bridge splits the run", func(t *testing.T) {
		t.Parallel()
		r, err := NewRunDetector(RunDetectorConfig{MinNights: 0, MaxNights: 45})
		require.NoError(t, err)

		runs := r.Detect(awayDays("2024-07-01", "2024-07-02", "2024-07-06", "2024-07-07"), berlinHome())
		require.Len(t, runs, 2)
		assert.Equal(t, []string{"2024-07-01", "2024-07-02"}, runs[0])
		assert.Equal(t, []string{"2024-07-06", "2024-07-07"}, runs[1])
	})

	t.Run("too short runs rejected", func(t *testing.T) {
		t.Parallel()
		r, err := NewRunDetector(RunDetectorConfig{})
		require.NoError(t, err)

		// Default minimum is 2 nights
		runs := r.Detect(awayDays("2024-07-01", "2024-07-02"), berlinHome())
		assert.Empty(t, runs)
	})

	t.Run("days not flagged away never join", func(t *testing.T) {
		t.Parallel()
		r, err := NewRunDetector(RunDetectorConfig{MinNights: 0, MaxNights: 45, MaxBridgeDays: 0})
		require.NoError(t, err)

		days := awayDays("2024-07-01", "2024-07-03")
		days["2024-07-02"] = &DaySummary{Day: "2024-07-02", AwayCandidate: false}

		runs := r.Detect(days, berlinHome())
		require.Len(t, runs, 2)
	})
}

func TestBridgeKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"2024-07-02", "2024-07-03"}, bridgeKeys("2024-07-01", 2))
	assert.Equal(t, []string{"2024-03-01"}, bridgeKeys("2024-02-29", 1))
}

func TestDayGap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, dayGap("2024-07-01", "2024-07-02"))
	assert.Equal(t, 3, dayGap("2024-07-01", "2024-07-04"))
	assert.Equal(t, -1, dayGap("bad", "2024-07-04"))
}
