package tickets

import (
	"errors"
	"fmt"
)

// ErrSuperseded is returned by a refresh whose result was dropped because a
// newer refresh or selection started after it.
var ErrSuperseded = errors.New("refresh superseded by a newer one")

type NoRequesterErr struct {
	TicketId    int64
	RequesterId int64
}

func (e NoRequesterErr) Error() string {
	return fmt.Sprintf("ticket %d: requester %d not in view users", e.TicketId, e.RequesterId)
}
