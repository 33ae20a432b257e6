package ws

import (
	"github.com/favour-22/alx-polly/internal/core/event"
	"github.com/favour-22/alx-polly/internal/domain"
)

// RegisterSubscribers bridges poll events from the in-process bus to
// the websocket hub.
func RegisterSubscribers(bus *event.Bus, hub *Hub) {
	bus.Subscribe(domain.VoteCastEvent{}, func(ev any) {
		e, ok := ev.(domain.VoteCastEvent)
		if !ok {
			return
		}

		hub.Broadcast(&domain.WsEvent{
			Channel: domain.PollChannel(e.PollID),
			Event:   domain.WsEventVoteCast,
			Payload: e.Results,
		})
	})

	bus.Subscribe(domain.PollClosedEvent{}, func(ev any) {
		e, ok := ev.(domain.PollClosedEvent)
		if !ok {
			return
		}

		hub.Broadcast(&domain.WsEvent{
			Channel: domain.PollChannel(e.PollID),
			Event:   domain.WsEventPollClosed,
		})
	})
}
