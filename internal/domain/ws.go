package domain

import "github.com/google/uuid"

const (
	WsEventVoteCast   = "vote_cast"
	WsEventPollClosed = "poll_closed"
)

// PollChannel is the hub channel carrying live updates for one poll.
func PollChannel(pollID uuid.UUID) string {
	return "poll:" + pollID.String()
}

type WsEvent struct {
	Channel string `json:"channel,omitempty"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Events published on the in-process bus.
type VoteCastEvent struct {
	PollID  uuid.UUID
	Results *PollResults
}

type PollClosedEvent struct {
	PollID uuid.UUID
}
