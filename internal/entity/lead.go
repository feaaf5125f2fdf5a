package entity

import (
	"context"
	"time"
)

// Lead status pipeline.
const (
	StatusCold = "Cold"
	StatusWarm = "Warm"
	StatusHot  = "Hot"
)

// ValidStatuses lists every accepted lead status.
var ValidStatuses = []string{StatusCold, StatusWarm, StatusHot}

// ValidSources lists every accepted lead source.
var ValidSources = []string{
	"Website",
	"Referral",
	"Social Media",
	"Cold Call",
	"Open House",
	"Networking",
	"Advertisement",
	"Other",
}

type Lead struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Source        string     `json:"source"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastContacted *time.Time `json:"lastContacted,omitempty"`
	ReminderDate  *time.Time `json:"reminderDate,omitempty"`
}

func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidSource(s string) bool {
	for _, v := range ValidSources {
		if v == s {
			return true
		}
	}
	return false
}

// LeadBlobStore persists the whole collection as a single opaque blob.
// Load reports found=false when nothing has been persisted yet.
type LeadBlobStore interface {
	Load(ctx context.Context) (leads []Lead, found bool, err error)
	Save(ctx context.Context, leads []Lead) error
}

// Clock supplies the current instant so time-relative logic stays testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
