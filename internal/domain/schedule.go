package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/pkg/types"
)

// ScheduleConfig is the establishment's visible-day configuration: the wall
// clock bounds of the agenda plus an optional lunch interval rendered
// non-bookable. Owned by the business and read-only for the calendar.
type ScheduleConfig struct {
	EstablishmentID uuid.UUID
	OpeningTime     types.TimeString
	ClosingTime     types.TimeString
	LunchStart      *types.TimeString
	LunchEnd        *types.TimeString
	// SlotGranularityMinutes is the snapping unit for click-to-time
	// resolution. Hour markers on the grid are purely visual and independent
	// of this value.
	SlotGranularityMinutes int
	UpdatedAt              time.Time
}

// Granularity returns the snapping unit, falling back to the default when
// the stored value is missing or nonsensical.
func (c *ScheduleConfig) Granularity() int {
	if c == nil || c.SlotGranularityMinutes <= 0 {
		return DefaultSlotGranularityMinutes
	}
	return c.SlotGranularityMinutes
}

// HasLunchBreak reports whether a lunch interval is configured.
func (c *ScheduleConfig) HasLunchBreak() bool {
	return c != nil && c.LunchStart != nil && c.LunchEnd != nil &&
		c.LunchStart.IsBefore(*c.LunchEnd)
}

// Establishment is the business entity owning a schedule, services and
// appointments. Only the fields the agenda needs are carried here.
type Establishment struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	OwnerID   uuid.UUID
	Schedule  ScheduleConfig
	CreatedAt time.Time
}

// Service is a bookable service with a fixed price and duration. Duration is
// immutable once set: an appointment's end is derived from it at creation.
type Service struct {
	ID              uuid.UUID
	EstablishmentID uuid.UUID
	Name            string
	Price           float64
	DurationMinutes int
}
