package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/integrations/profileservice"
)

var (
	// ErrProfileNotFound возвращается, когда профиль не найден
	ErrProfileNotFound = errors.New("session: profile not found")

	// ErrResolutionTimeout is returned when identity resolution exceeds its
	// bound. The caller should offer an explicit retry, not a generic error.
	ErrResolutionTimeout = errors.New("session: identity resolution timed out, retry")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("session: internal error")
)

// ProfileResolver интерфейс клиента ProfileService
type ProfileResolver interface {
	ResolveProfile(ctx context.Context, userID uuid.UUID) (*profileservice.Profile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Session is the explicit identity context of an authenticated user,
// created on login and destroyed on logout. There is no ambient singleton:
// everything that needs the identity receives the session.
type Session struct {
	Profile   *profileservice.Profile
	CreatedAt time.Time
}

// EstablishmentID returns the establishment the session is scoped to, or
// uuid.Nil for a client session.
func (s *Session) EstablishmentID() uuid.UUID {
	if s.Profile.EstablishmentID == nil {
		return uuid.Nil
	}
	return *s.Profile.EstablishmentID
}

// Manager creates sessions by resolving identities.
type Manager struct {
	resolver ProfileResolver
	logger   Logger
}

// NewManager создает новый экземпляр менеджера сессий
func NewManager(resolver ProfileResolver, logger Logger) *Manager {
	return &Manager{resolver: resolver, logger: logger}
}

// Login resolves the user's profile and builds a session. A resolution
// timeout maps to ErrResolutionTimeout so the caller can surface a retry
// affordance instead of hanging or failing generically.
func (m *Manager) Login(ctx context.Context, userID uuid.UUID) (*Session, error) {
	profile, err := m.resolver.ResolveProfile(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, profileservice.ErrResolutionTimeout):
			m.logger.Warn("Login: identity resolution timed out for user=%s", userID)
			return nil, ErrResolutionTimeout
		case errors.Is(err, profileservice.ErrProfileNotFound):
			return nil, ErrProfileNotFound
		default:
			return nil, fmt.Errorf("%w: resolve profile: %v", ErrInternal, err)
		}
	}

	m.logger.Info("Login: session created for user=%s role=%s", userID, profile.Role)
	return &Session{Profile: profile, CreatedAt: time.Now()}, nil
}
