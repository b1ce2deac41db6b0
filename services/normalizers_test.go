package services

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilmodi00/award-scraper/shared"
)

func TestFormatClockTime(t *testing.T) {
	testCases := []struct {
		name      string
		timestamp string
		expected  string
	}{
		{"with milliseconds and offset", "2025-12-15T07:05:00.000-08:00", "07:05"},
		{"rfc3339 offset", "2025-12-15T23:59:00-05:00", "23:59"},
		{"without offset", "2025-12-15T00:00:00", "00:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clockTime, err := FormatClockTime(tc.timestamp)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, clockTime)
		})
	}
}

func TestFormatClockTimeMalformed(t *testing.T) {
	for _, timestamp := range []string{"", "not-a-timestamp", "2025-13-45T99:99:00Z", "12/15/2025 7:00 AM"} {
		_, err := FormatClockTime(timestamp)
		require.Error(t, err, "timestamp %q should not parse", timestamp)
		assert.True(t, shared.HasErrorCode(err, shared.CodeMalformedTimestamp))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2h 5m", FormatDuration(125))
	assert.Equal(t, "0h 0m", FormatDuration(0))
	assert.Equal(t, "1h 0m", FormatDuration(60))
	assert.Equal(t, "0h 59m", FormatDuration(59))
	assert.Equal(t, "25h 1m", FormatDuration(1501))
}

func TestNormalizerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("duration label is floor division by 60 with remainder", prop.ForAll(
		func(minutes int) bool {
			return FormatDuration(minutes) == fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
		},
		gen.IntRange(0, 100000),
	))

	clockPattern := regexp.MustCompile(`^\d{2}:\d{2}$`)
	properties.Property("clock time is zero-padded HH:MM matching the local hour and minute", prop.ForAll(
		func(hour, minute int) bool {
			timestamp := fmt.Sprintf("2025-12-15T%02d:%02d:00-08:00", hour, minute)
			clockTime, err := FormatClockTime(timestamp)
			if err != nil {
				return false
			}
			return clockPattern.MatchString(clockTime) && clockTime == fmt.Sprintf("%02d:%02d", hour, minute)
		},
		gen.IntRange(0, 23),
		gen.IntRange(0, 59),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
