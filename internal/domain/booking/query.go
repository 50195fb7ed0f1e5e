package booking

import (
	"fmt"
	"time"

	"github.com/shareit/service-shareit/internal/platform/domain"
)

// State is a caller-facing filter over a subject's bookings.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var knownStates = map[State]struct{}{
	StateAll:      {},
	StateCurrent:  {},
	StatePast:     {},
	StateFuture:   {},
	StateWaiting:  {},
	StateRejected: {},
}

// ParseState accepts the exact upper-case tokens only.
func ParseState(token string) (State, error) {
	state := State(token)
	if _, ok := knownStates[state]; !ok {
		return "", domain.NewBadRequestError(fmt.Sprintf("Unknown state: %s", token))
	}
	return state, nil
}

// Matches evaluates the state predicate for b at the instant now.
// CURRENT is start <= now < end, PAST is end < now, FUTURE is start > now.
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !b.start.After(now) && b.end.After(now)
	case StatePast:
		return b.end.Before(now)
	case StateFuture:
		return b.start.After(now)
	case StateWaiting:
		return b.status == StatusWaiting
	case StateRejected:
		return b.status == StatusRejected
	}
	return false
}

// Subject selects whose bookings a query returns.
type Subject int

const (
	// SubjectBooker matches bookings made by the subject user.
	SubjectBooker Subject = iota
	// SubjectOwner matches bookings on items owned by the subject user.
	SubjectOwner
)

func (s Subject) String() string {
	if s == SubjectOwner {
		return "owner"
	}
	return "booker"
}

// Query is one page of a subject's bookings in a state, newest start first.
// Now is sampled once by the caller and used for every predicate.
type Query struct {
	Subject   Subject
	SubjectID int64
	State     State
	Now       time.Time
	Page      domain.Page
}
