package server

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/rules"
	"github.com/goliatone/go-jobform/pkg/submission"
)

const defaultSessionTTL = 30 * time.Minute

type session struct {
	id         string
	registry   *form.Registry
	controller *submission.Controller
	lastUsed   time.Time
}

// sessionStore keeps form sessions in memory. A session idle for longer than
// ttl is dropped, unless its submission is still in flight.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	form     model.FormModel
	effect   submission.Effect
	logger   *slog.Logger
	now      func() time.Time
	ttl      time.Duration
}

func newSessionStore(def model.FormModel, effect submission.Effect, logger *slog.Logger, now func() time.Time, ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionStore{
		sessions: make(map[string]*session),
		form:     def,
		effect:   effect,
		logger:   logger,
		now:      now,
		ttl:      ttl,
	}
}

func (s *sessionStore) expired(sess *session, now time.Time) bool {
	return now.Sub(sess.lastUsed) > s.ttl && !sess.controller.Busy()
}

// sweep drops expired sessions. Callers hold s.mu.
func (s *sessionStore) sweep(now time.Time) int {
	dropped := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

func (s *sessionStore) create() (*session, error) {
	registry, err := form.New(s.form, rules.WithClock(s.now))
	if err != nil {
		return nil, fmt.Errorf("server: new session: %w", err)
	}
	sess := &session{
		id:       uuid.NewString(),
		registry: registry,
	}
	sess.controller = submission.NewController(registry, s.effect,
		submission.WithFormID(s.form.ID),
		submission.WithLogger(s.logger.With(slog.String("session", sess.id))),
		submission.WithClock(s.now),
	)

	s.mu.Lock()
	now := s.now()
	if dropped := s.sweep(now); dropped > 0 {
		s.logger.Debug("sessions expired", slog.Int("count", dropped))
	}
	sess.lastUsed = now
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess, nil
}

func (s *sessionStore) get(id string) (*session, bool) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastUsed = now
	return sess, true
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// resolve returns the session named by id or starts a new one.
func (s *sessionStore) resolve(id string) (*session, error) {
	if sess, ok := s.get(id); ok {
		return sess, nil
	}
	return s.create()
}
