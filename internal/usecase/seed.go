package usecase

import (
	"time"

	"github.com/xavierca1/leadtrack/internal/entity"
)

// SeedLeads returns the demo dataset used when the blob store is empty
// or unreadable. Timestamps are relative to now so the follow-up view
// has something meaningful to show on first run.
func SeedLeads(now time.Time) []entity.Lead {
	day := 24 * time.Hour
	ts := func(t time.Time) *time.Time { return &t }

	return []entity.Lead{
		{
			ID:            "1",
			Name:          "Sarah Johnson",
			Email:         "sarah.j@email.com",
			Phone:         "(555) 123-4567",
			Source:        "Referral",
			Status:        entity.StatusHot,
			Notes:         "Looking for 3BR home in downtown area. Budget $500K.",
			CreatedAt:     now,
			LastContacted: ts(now.Add(-2 * day)),
			ReminderDate:  ts(now.Add(1 * day)),
		},
		{
			ID:            "2",
			Name:          "Mike Chen",
			Email:         "mike.chen@email.com",
			Phone:         "(555) 987-6543",
			Source:        "Website",
			Status:        entity.StatusWarm,
			Notes:         "First-time buyer, needs guidance on mortgage process.",
			CreatedAt:     now.Add(-5 * day),
			LastContacted: ts(now.Add(-7 * day)),
			ReminderDate:  ts(now),
		},
		{
			ID:            "3",
			Name:          "Emily Davis",
			Email:         "emily.davis@email.com",
			Phone:         "(555) 456-7890",
			Source:        "Social Media",
			Status:        entity.StatusCold,
			Notes:         "Interested in investment properties.",
			CreatedAt:     now.Add(-10 * day),
			LastContacted: ts(now.Add(-14 * day)),
			ReminderDate:  ts(now.Add(3 * day)),
		},
	}
}
