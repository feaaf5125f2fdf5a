package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadtrack/internal/entity"
)

func TestClassifyUrgency(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	cases := []struct {
		name         string
		lead         entity.Lead
		wantLabel    string
		wantPriority int
	}{
		{
			"reminder more than a day overdue",
			entity.Lead{ReminderDate: tsp(now.Add(-48 * time.Hour)), CreatedAt: now},
			TierOverdue, 1,
		},
		{
			"reminder a few hours overdue",
			entity.Lead{ReminderDate: tsp(now.Add(-10 * time.Hour)), CreatedAt: now},
			TierDueToday, 2,
		},
		{
			"reminder coming up within a day",
			entity.Lead{ReminderDate: tsp(now.Add(10 * time.Hour)), CreatedAt: now},
			TierDueSoon, 3,
		},
		{
			"far-out reminder falls through to staleness",
			entity.Lead{ReminderDate: tsp(now.Add(5 * day)), CreatedAt: now.Add(-20 * day)},
			TierLongOverdue, 1,
		},
		{
			"two weeks without contact",
			entity.Lead{CreatedAt: now.Add(-30 * day), LastContacted: tsp(now.Add(-15 * day))},
			TierLongOverdue, 1,
		},
		{
			"one week without contact",
			entity.Lead{CreatedAt: now.Add(-30 * day), LastContacted: tsp(now.Add(-8 * day))},
			TierFollowUpNeeded, 2,
		},
		{
			"recently contacted",
			entity.Lead{CreatedAt: now.Add(-30 * day), LastContacted: tsp(now.Add(-2 * day))},
			TierScheduled, 4,
		},
		{
			"never contacted, falls back to creation time",
			entity.Lead{CreatedAt: now.Add(-15 * day)},
			TierLongOverdue, 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyUrgency(tc.lead, now)
			assert.Equal(t, tc.wantLabel, got.Label)
			assert.Equal(t, tc.wantPriority, got.Priority)
		})
	}
}

func TestRankFollowUps_PriorityOrderIsStable(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	a := entity.Lead{ID: "a", CreatedAt: now, ReminderDate: tsp(now.Add(-48 * time.Hour))} // Overdue, prio 1
	b := entity.Lead{ID: "b", CreatedAt: now, ReminderDate: tsp(now.Add(10 * time.Hour))}  // Due Soon, prio 3
	c := entity.Lead{ID: "c", CreatedAt: now.Add(-30 * day), LastContacted: tsp(now.Add(-15 * day))} // Long Overdue, prio 1

	ranked := RankFollowUps([]entity.Lead{a, b, c}, now)
	require.Len(t, ranked, 3)

	assert.Equal(t, "a", ranked[0].Lead.ID)
	assert.Equal(t, TierOverdue, ranked[0].Urgency.Label)
	assert.Equal(t, "c", ranked[1].Lead.ID, "priority ties keep store order")
	assert.Equal(t, TierLongOverdue, ranked[1].Urgency.Label)
	assert.Equal(t, "b", ranked[2].Lead.ID)
	assert.Equal(t, TierDueSoon, ranked[2].Urgency.Label)
}

func TestRankFollowUps_OnlyCandidatesAreRanked(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	fresh := entity.Lead{ID: "fresh", CreatedAt: now.Add(-1 * day)}
	stale := entity.Lead{ID: "stale", CreatedAt: now.Add(-8 * day)}

	ranked := RankFollowUps([]entity.Lead{fresh, stale}, now)
	require.Len(t, ranked, 1)
	assert.Equal(t, "stale", ranked[0].Lead.ID)
	assert.Equal(t, TierFollowUpNeeded, ranked[0].Urgency.Label)
}
