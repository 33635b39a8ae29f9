package chat

import (
	"errors"
	"sync"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Greeting is the first bot message of every conversation.
const Greeting = "Hi there! How can I help you with selling your software licenses today?"

// Unavailable replaces the typing indicator in the widget when the server
// cannot be reached for a reply.
const Unavailable = "Sorry, the chat is unavailable right now. Please try again in a moment."

// typingText is what the widget renders while a reply is in flight.
const typingText = "..."

var ErrTypingActive = errors.New("a reply is already in progress")

type Message struct {
	Sender   Sender `json:"sender"`
	Text     string `json:"text"`
	IsTyping bool   `json:"isTyping,omitempty"`
}

// Transcript is the ordered conversation shown in the chat widget.
// At most one typing indicator exists at a time.
type Transcript struct {
	mu          sync.RWMutex
	msgs        []Message
	maxMessages int
}

// NewTranscript starts a conversation with the greeting. maxMessages <= 0
// keeps every message.
func NewTranscript(maxMessages int) *Transcript {
	return &Transcript{
		msgs:        []Message{{Sender: SenderBot, Text: Greeting}},
		maxMessages: maxMessages,
	}
}

func (t *Transcript) AppendUser(text string) Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	m := Message{Sender: SenderUser, Text: text}
	t.msgs = append(t.msgs, m)
	t.trimLocked()
	return m
}

// ShowTyping appends the typing indicator.
func (t *Transcript) ShowTyping() (Message, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.typingIndexLocked() >= 0 {
		return Message{}, ErrTypingActive
	}
	m := Message{Sender: SenderBot, Text: typingText, IsTyping: true}
	t.msgs = append(t.msgs, m)
	t.trimLocked()
	return m, nil
}

// ResolveTyping removes the typing indicator, if any, and appends the bot
// reply in the same step so readers never see both or neither.
func (t *Transcript) ResolveTyping(text string) Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.typingIndexLocked(); i >= 0 {
		t.msgs = append(t.msgs[:i], t.msgs[i+1:]...)
	}
	m := Message{Sender: SenderBot, Text: text}
	t.msgs = append(t.msgs, m)
	t.trimLocked()
	return m
}

// Typing reports whether a reply is in flight.
func (t *Transcript) Typing() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.typingIndexLocked() >= 0
}

func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.msgs))
	copy(out, t.msgs)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.msgs)
}

func (t *Transcript) typingIndexLocked() int {
	for i := len(t.msgs) - 1; i >= 0; i-- {
		if t.msgs[i].IsTyping {
			return i
		}
	}
	return -1
}

func (t *Transcript) trimLocked() {
	if t.maxMessages <= 0 {
		return
	}
	if len(t.msgs) > t.maxMessages {
		t.msgs = t.msgs[len(t.msgs)-t.maxMessages:]
	}
}
