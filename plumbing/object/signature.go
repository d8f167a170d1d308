package object

import (
	"fmt"
	"time"
)

// Signature identifies an author or committer, matching git's
// "name <email> seconds offset" identity line.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Encode renders the signature as it appears in a commit payload.
func (s Signature) Encode() string {
	_, offsetSeconds := s.When.Zone()
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, s.When.Unix(), formatOffset(offsetSeconds))
}

// formatOffset renders a UTC offset, in seconds, as git's "+hhmm"/"-hhmm".
func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%s%02d%02d", sign, hours, minutes)
}
