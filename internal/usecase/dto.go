package usecase

import "time"

type CreateLeadInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Source string `json:"source"`
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// UpdateLeadInput merges into an existing lead; nil fields are left
// untouched. ID and CreatedAt are immutable and have no slot here.
type UpdateLeadInput struct {
	Name          *string    `json:"name,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Source        *string    `json:"source,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	LastContacted *time.Time `json:"lastContacted,omitempty"`
	ReminderDate  *time.Time `json:"reminderDate,omitempty"`
}
