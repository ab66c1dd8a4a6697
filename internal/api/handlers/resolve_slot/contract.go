package resolve_slot

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AgendaViews interface {
	ResolveClick(ctx context.Context, establishmentID uuid.UUID, date time.Time, offsetPixels int) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
