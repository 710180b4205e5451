package bot

import (
	"sync"

	"cobuilt/quote-bot/internal/domain/conversation"
)

// sessions keeps one entry per chat. The entry mutex serializes update
// processing within a chat while different chats proceed concurrently.
type sessions struct {
	mu sync.Mutex
	m  map[int64]*sessionEntry
}

type sessionEntry struct {
	mu sync.Mutex
	s  *conversation.Session
}

func newSessions() *sessions {
	return &sessions{m: make(map[int64]*sessionEntry)}
}

func (r *sessions) entryFor(chatID int64) *sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.m[chatID]
	if e == nil {
		e = &sessionEntry{}
		r.m[chatID] = e
	}
	return e
}
