package services

import (
	"regexp"
	"strings"
	"time"

	"woa-fleet/hangar/internal/constants"
)

var colourPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func fleetStatsPrefix(userID string) string {
	return string(constants.CachePrefixFleetStats) + userID + "|"
}

func usernameKey(userID string) string {
	return string(constants.CachePrefixUsername) + userID
}

func lengthBetween(s string, min, max int) bool {
	n := len([]rune(s))
	return n >= min && n <= max
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func systemNow() time.Time {
	return time.Now().UTC()
}
