package chat

import "context"

type EventType string

const (
	EventUser   EventType = "user"
	EventTyping EventType = "typing"
	EventReply  EventType = "reply"
)

// Event is one transition of a chat turn, emitted as it happens.
type Event struct {
	Type    EventType `json:"type"`
	Message Message   `json:"message"`
	Source  Source    `json:"source,omitempty"`
}

// RunTurn plays one chat turn against transcript:
//
//	user message appended -> typing indicator shown -> reply resolved ->
//	indicator removed and reply appended
//
// notify, if set, is called after each step. The caller serializes turns on
// the same transcript.
func RunTurn(ctx context.Context, t *Transcript, r *Responder, kind Kind, text string, notify func(Event)) Resolution {
	emit := func(e Event) {
		if notify != nil {
			notify(e)
		}
	}

	emit(Event{Type: EventUser, Message: t.AppendUser(text)})

	// An indicator already present is reused; ResolveTyping removes it once.
	if typing, err := t.ShowTyping(); err == nil {
		emit(Event{Type: EventTyping, Message: typing})
	}

	res := r.Resolve(ctx, kind, text)

	emit(Event{Type: EventReply, Message: t.ResolveTyping(res.Text), Source: res.Source})
	return res
}
