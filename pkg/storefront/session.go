package storefront

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

type AuthReason string

const (
	ReasonLogin   AuthReason = "login"
	ReasonRestore AuthReason = "restore"
	ReasonLogout  AuthReason = "logout"
	ReasonExpired AuthReason = "expired"
)

type AuthEvent struct {
	Authenticated bool
	Reason        AuthReason
	User          *User
}

type AuthListener func(ctx context.Context, ev AuthEvent)

// Session owns the bearer token and the signed-in user. The token and user
// are mirrored into Storage so a restart can restore them.
type Session struct {
	client  *Client
	storage Storage
	logger  *zap.Logger

	mu        sync.RWMutex
	token     string
	user      *User
	listeners map[int]AuthListener
	nextID    int
	leaving   bool

	// OnUnauthorized runs after a 401 cleared the session, e.g. to redirect
	// to a login screen.
	OnUnauthorized func()
}

func NewSession(client *Client, storage Storage, logger *zap.Logger) *Session {
	if client == nil || storage == nil {
		panic("storefront: session requires client and storage")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		client:    client,
		storage:   storage,
		logger:    logger.Named("storefront.session"),
		listeners: make(map[int]AuthListener),
	}
	client.bind(s.Token, s.expire)
	return s
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Subscribe registers fn for auth changes and returns its unsubscribe func.
func (s *Session) Subscribe(fn AuthListener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Session) notify(ctx context.Context, ev AuthEvent) {
	s.mu.RLock()
	fns := make([]AuthListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ctx, ev)
	}
}

// Restore loads a persisted session. A stored user that no longer decodes is
// dropped along with its token.
func (s *Session) Restore(ctx context.Context) bool {
	token, found, err := s.storage.Get(KeyToken)
	if err != nil || !found || token == "" {
		return false
	}

	var user *User
	if raw, found, err := s.storage.Get(KeyUser); err == nil && found {
		var u User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			s.logger.Warn("stored user is corrupt, clearing session", zap.Error(err))
			s.clear()
			return false
		}
		user = &u
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	s.notify(ctx, AuthEvent{Authenticated: true, Reason: ReasonRestore, User: s.User()})
	return true
}

func (s *Session) Login(ctx context.Context, email, password string) Result {
	res, err := s.client.login(ctx, email, password)
	if err != nil {
		return failed(UserMessage(err))
	}

	raw, err := json.Marshal(res.User)
	if err != nil {
		return failed(GenericError)
	}
	if err := s.storage.Set(KeyToken, res.AccessToken); err != nil {
		s.logger.Warn("persist token failed", zap.Error(err))
	}
	if err := s.storage.Set(KeyUser, string(raw)); err != nil {
		s.logger.Warn("persist user failed", zap.Error(err))
	}

	user := res.User
	s.mu.Lock()
	s.token = res.AccessToken
	s.user = &user
	s.mu.Unlock()

	s.notify(ctx, AuthEvent{Authenticated: true, Reason: ReasonLogin, User: s.User()})
	return ok()
}

// Logout revokes the token server side on a best-effort basis and always
// clears the local session.
func (s *Session) Logout(ctx context.Context) {
	if s.Authenticated() {
		s.mu.Lock()
		s.leaving = true
		s.mu.Unlock()

		if err := s.client.logout(ctx); err != nil {
			s.logger.Debug("server logout failed", zap.Error(err))
		}
	}
	s.clear()
	s.notify(ctx, AuthEvent{Reason: ReasonLogout})
}

func (s *Session) clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.leaving = false
	s.mu.Unlock()

	_ = s.storage.Delete(KeyToken)
	_ = s.storage.Delete(KeyUser)
}

func (s *Session) expire() {
	s.mu.RLock()
	skip := s.token == "" || s.leaving
	s.mu.RUnlock()
	if skip {
		return
	}
	s.logger.Info("session expired")
	s.clear()
	s.notify(context.Background(), AuthEvent{Reason: ReasonExpired})
	if s.OnUnauthorized != nil {
		s.OnUnauthorized()
	}
}
