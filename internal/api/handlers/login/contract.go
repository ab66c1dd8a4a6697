package login

import (
	"context"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/service/session"
)

type SessionManager interface {
	Login(ctx context.Context, userID uuid.UUID) (*session.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
