package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)

// User is an authenticated actor together with its access profile: the role
// and the list of sector partitions its reads are allowed to touch.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Sectors      []string  `json:"sectors"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
