package usecase

import (
	"strings"
	"time"

	"github.com/xavierca1/leadtrack/internal/entity"
)

// Pure queries over a store snapshot. All of them preserve store order
// (newest insert first); none mutate their input.

// ByStatus returns the leads whose status equals status.
func ByStatus(leads []entity.Lead, status string) []entity.Lead {
	out := make([]entity.Lead, 0)
	for _, l := range leads {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out
}

// Search filters leads by a case-insensitive substring match against
// name, email, source and status. An empty query returns everything.
func Search(leads []entity.Lead, query string) []entity.Lead {
	if query == "" {
		return leads
	}

	q := strings.ToLower(query)
	out := make([]entity.Lead, 0)
	for _, l := range leads {
		if strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Email), q) ||
			strings.Contains(strings.ToLower(l.Source), q) ||
			strings.Contains(strings.ToLower(l.Status), q) {
			out = append(out, l)
		}
	}
	return out
}

// endOfDay returns 23:59:59.999 of the local civil day containing t.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}

// daysSince counts whole elapsed days between ref and now.
func daysSince(now, ref time.Time) int {
	return int(now.Sub(ref) / (24 * time.Hour))
}

// FollowUpCandidates selects the leads needing attention: reminder due
// today or earlier, or 7+ whole days since the last contact (since
// creation when never contacted). Order follows the input; urgency
// ranking is a separate step.
func FollowUpCandidates(leads []entity.Lead, now time.Time) []entity.Lead {
	eod := endOfDay(now)
	out := make([]entity.Lead, 0)
	for _, l := range leads {
		if needsFollowUp(l, now, eod) {
			out = append(out, l)
		}
	}
	return out
}

func needsFollowUp(l entity.Lead, now, eod time.Time) bool {
	if l.ReminderDate != nil && !l.ReminderDate.After(eod) {
		return true
	}
	if l.LastContacted != nil {
		return daysSince(now, *l.LastContacted) >= 7
	}
	return daysSince(now, l.CreatedAt) >= 7
}
