package utils

import (
	"carepulse-service/internal/pkg/constvars"
	"strings"
	"time"
)

// ParseScheduleTime accepts RFC 3339 timestamps and the value of an HTML
// datetime-local input, interpreted in the server's local zone.
func ParseScheduleTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	parsed, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return parsed, nil
	}
	return time.ParseInLocation(constvars.ScheduleDateTimeLayout, value, time.Local)
}

// ParseBirthDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
func ParseBirthDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	parsed, err := time.ParseInLocation(constvars.BirthDateLayout, value, time.Local)
	if err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}

func FormatNotificationTime(t time.Time) string {
	return t.In(time.Local).Format(constvars.NotificationDateLayout)
}
