package chat

import "sync"

// Message is a single chat message. It is immutable once appended.
type Message struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// History is the append-only, in-memory message log replayed to new connections.
type History struct {
	messages []Message

	// limit caps the number of retained messages; zero keeps everything.
	limit int

	mu sync.RWMutex
}

// NewHistory returns an empty History. A positive limit evicts the oldest messages
// once more than limit messages have been appended.
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Append records a message and returns it. It never fails and performs no validation.
func (h *History) Append(text, author string) Message {
	m := Message{Text: text, Author: author}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages, m)
	if h.limit > 0 && len(h.messages) > h.limit {
		// copy down so the evicted prefix can be collected
		kept := make([]Message, h.limit, h.limit+1)
		copy(kept, h.messages[len(h.messages)-h.limit:])
		h.messages = kept
	}

	return m
}

// All returns a copy of the retained messages in append order. The result is never nil.
func (h *History) All() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of retained messages.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.messages)
}
