package model

import (
	"fmt"
	"strings"
	"time"
)

// Status is the coarse availability state of a consultant.
type Status int

// Consultant statuses.
const (
	StatusAvailable Status = iota
	StatusAssigned
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusAssigned:
		return "assigned"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "available"
	}
}

// ParseStatus maps a case-insensitive status name onto a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "available":
		return StatusAvailable, nil
	case "assigned":
		return StatusAssigned, nil
	case "unavailable":
		return StatusUnavailable, nil
	}
	return StatusAvailable, invalid("status", "unknown status %q", s)
}

// Engagement is the project a consultant is currently staffed on.
type Engagement struct {
	ProjectID string
	Start     time.Time
	End       time.Time
}

// Availability is a tagged status: an engagement exists exactly when the
// status is StatusAssigned. The zero value is Available.
type Availability struct {
	status     Status
	engagement Engagement
}

// Available returns the free state.
func Available() Availability { return Availability{status: StatusAvailable} }

// Unavailable returns the state of a consultant who cannot be staffed.
func Unavailable() Availability { return Availability{status: StatusUnavailable} }

// Assigned returns the state of a consultant staffed on e.
func Assigned(e Engagement) Availability {
	return Availability{status: StatusAssigned, engagement: e}
}

// Status returns the coarse status.
func (a Availability) Status() Status { return a.status }

// Engagement returns the current engagement, if assigned.
func (a Availability) Engagement() (Engagement, bool) {
	return a.engagement, a.status == StatusAssigned
}

// Equal compares two states including engagement dates.
func (a Availability) Equal(b Availability) bool {
	if a.status != b.status {
		return false
	}
	if a.status != StatusAssigned {
		return true
	}
	return a.engagement.ProjectID == b.engagement.ProjectID &&
		a.engagement.Start.Equal(b.engagement.Start) &&
		a.engagement.End.Equal(b.engagement.End)
}

func (a Availability) String() string {
	if e, ok := a.Engagement(); ok {
		return fmt.Sprintf("assigned(%s %s..%s)", e.ProjectID, FormatDate(e.Start), FormatDate(e.End))
	}
	return a.status.String()
}
