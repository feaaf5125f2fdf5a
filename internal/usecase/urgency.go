package usecase

import (
	"sort"
	"time"

	"github.com/xavierca1/leadtrack/internal/entity"
)

// Urgency tiers, lower priority ranks first.
const (
	TierOverdue        = "Overdue"
	TierDueToday       = "Due Today"
	TierDueSoon        = "Due Soon"
	TierLongOverdue    = "Long Overdue"
	TierFollowUpNeeded = "Follow-up Needed"
	TierScheduled      = "Scheduled"
)

type Urgency struct {
	Label    string `json:"label"`
	Priority int    `json:"priority"`
}

type RankedLead struct {
	Lead    entity.Lead `json:"lead"`
	Urgency Urgency     `json:"urgency"`
}

// ClassifyUrgency derives the urgency tier for a lead. A reminder within
// a day either way dominates; a reminder further than 24h out creates no
// urgency of its own and falls through to the staleness rules. The
// reminder path is hour-based and the staleness path is whole-day based;
// the mismatch is deliberate, it is the behavior users see.
func ClassifyUrgency(l entity.Lead, now time.Time) Urgency {
	if l.ReminderDate != nil {
		diffHours := l.ReminderDate.Sub(now).Hours()
		switch {
		case diffHours < -24:
			return Urgency{TierOverdue, 1}
		case diffHours < 0:
			return Urgency{TierDueToday, 2}
		case diffHours < 24:
			return Urgency{TierDueSoon, 3}
		}
	}

	ref := l.CreatedAt
	if l.LastContacted != nil {
		ref = *l.LastContacted
	}

	switch d := daysSince(now, ref); {
	case d >= 14:
		return Urgency{TierLongOverdue, 1}
	case d >= 7:
		return Urgency{TierFollowUpNeeded, 2}
	}
	return Urgency{TierScheduled, 4}
}

// RankFollowUps builds the "who to contact next" sequence: follow-up
// candidates classified and stably sorted by ascending priority, so ties
// keep their store order.
func RankFollowUps(leads []entity.Lead, now time.Time) []RankedLead {
	candidates := FollowUpCandidates(leads, now)
	ranked := make([]RankedLead, len(candidates))
	for i, l := range candidates {
		ranked[i] = RankedLead{Lead: l, Urgency: ClassifyUrgency(l, now)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Urgency.Priority < ranked[j].Urgency.Priority
	})
	return ranked
}
