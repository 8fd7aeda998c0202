// Package session keeps per-user conversation history in process memory.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"go.uber.org/zap"
)

type Store struct {
	mu          sync.Mutex
	sessions    map[string]*session
	ttl         time.Duration
	maxMessages int
	now         func() time.Time
	logger      *zap.SugaredLogger
}

type session struct {
	messages []model.Message
	lastSeen time.Time
}

// NewStore creates a store whose sessions expire after ttl without activity
// and keep at most maxMessages messages. Zero disables the respective limit.
func NewStore(ttl time.Duration, maxMessages int, logger *zap.SugaredLogger) *Store {
	return &Store{
		sessions:    make(map[string]*session),
		ttl:         ttl,
		maxMessages: maxMessages,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *Store) History(_ context.Context, userID string) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	if s.expired(sess, s.now()) {
		delete(s.sessions, userID)
		return nil, nil
	}

	res := make([]model.Message, len(sess.messages))
	copy(res, sess.messages)
	return res, nil
}

func (s *Store) Append(_ context.Context, userID string, msgs ...model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.sessions[userID]
	if !ok || s.expired(sess, now) {
		sess = &session{}
		s.sessions[userID] = sess
	}

	sess.messages = append(sess.messages, msgs...)
	if s.maxMessages > 0 && len(sess.messages) > s.maxMessages {
		sess.messages = append([]model.Message(nil), sess.messages[len(sess.messages)-s.maxMessages:]...)
	}
	sess.lastSeen = now

	return nil
}

// Evict drops idle sessions and returns how many were removed.
func (s *Store) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Start evicts idle sessions every period until ctx is done.
func (s *Store) Start(ctx context.Context, period time.Duration) {
	if s.ttl <= 0 || period <= 0 {
		return
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				s.logger.Debugw("evicted idle sessions", "count", n, "left", s.Len())
			}
		}
	}
}

func (s *Store) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}
