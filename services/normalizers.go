package services

import (
	"fmt"
	"time"

	"github.com/fenilmodi00/award-scraper/shared"
)

// Timestamp layouts the booking API has been observed using. All carry the
// local UTC offset; the bare layout covers responses that omit it.
var segmentTimestampLayouts = []string{
	"2006-01-02T15:04:05.000-07:00",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// FormatClockTime converts an ISO-8601 timestamp into a zero-padded
// 24-hour "HH:MM" clock time in the timestamp's own timezone.
func FormatClockTime(timestamp string) (string, error) {
	for _, layout := range segmentTimestampLayouts {
		if parsed, err := time.Parse(layout, timestamp); err == nil {
			return parsed.Format("15:04"), nil
		}
	}

	return "", shared.NewServiceError(shared.ErrorCategoryValidation, shared.CodeMalformedTimestamp,
		fmt.Sprintf("cannot parse %q as an ISO-8601 timestamp", timestamp),
		"normalizers", "FormatClockTime", false, nil)
}

// FormatDuration converts a minute count into an "{hours}h {minutes}m"
// label using floor division, so 125 becomes "2h 5m" and 0 becomes "0h 0m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
