package models

import "time"

// WorkerRole classifies a worker's duty on the payroll.
type WorkerRole string

const (
	RoleSiteWorker     WorkerRole = "site_worker"
	RoleForeman        WorkerRole = "foreman"
	RoleDriver         WorkerRole = "driver"
	RoleAdministrative WorkerRole = "administrative"
)

// Valid returns true when the role is a supported value.
func (r WorkerRole) Valid() bool {
	switch r {
	case RoleSiteWorker, RoleForeman, RoleDriver, RoleAdministrative:
		return true
	default:
		return false
	}
}

// Operational reports whether the role takes part in site attendance.
// Administrative staff are excluded from attendance-driven statistics.
func (r WorkerRole) Operational() bool {
	return r != RoleAdministrative
}

// Worker represents an employee of the company.
type Worker struct {
	ID         string     `db:"id" json:"id"`
	FirstName  string     `db:"first_name" json:"first_name"`
	LastName   string     `db:"last_name" json:"last_name"`
	FiscalCode *string    `db:"fiscal_code" json:"fiscal_code,omitempty"`
	Role       WorkerRole `db:"role" json:"role"`
	Phone      *string    `db:"phone" json:"phone,omitempty"`
	BirthDate  *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// WorkerFilter defines listing filters.
type WorkerFilter struct {
	Search    string
	Role      *WorkerRole
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
