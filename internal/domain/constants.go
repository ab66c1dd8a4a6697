package domain

// Default schedule values, used when the establishment config is missing or
// fails to parse. The agenda must keep rendering on a malformed config.
const (
	DefaultOpeningTime = "08:00"
	DefaultClosingTime = "20:00"
	DefaultLunchStart  = "12:00"
	DefaultLunchEnd    = "13:00"

	DefaultSlotGranularityMinutes = 15
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 120
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxBlockedHoldHours       = 24
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses список статусов, участвующих в инварианте непересечения.
// Используется при выборках для проверки конфликтов.
var OccupyingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusBlocked,
}

// VoidStatuses записи, исключённые из инварианта (хранятся для истории)
var VoidStatuses = []AppointmentStatus{
	StatusCancelled,
}
