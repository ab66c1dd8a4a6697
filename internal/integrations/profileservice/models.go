package profileservice

import "github.com/google/uuid"

// Profile is the identity record of an authenticated user as returned by the
// profile service.
type Profile struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Phone           *string    `json:"phone,omitempty"`
	Role            string     `json:"role"` // owner, barber, admin, client
	EstablishmentID *uuid.UUID `json:"establishmentId,omitempty"`
}

// IsStaff reports whether the profile belongs to establishment staff.
func (p *Profile) IsStaff() bool {
	return p.Role == "owner" || p.Role == "barber" || p.Role == "admin"
}
