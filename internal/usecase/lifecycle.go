package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/leadtrack/internal/entity"
)

// MarkAsContacted stamps the lead as contacted now and schedules the
// next reminder a week out. Calling it twice with the same clock
// reading is idempotent.
func (s *LeadStore) MarkAsContacted(ctx context.Context, id string) (entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return entity.Lead{}, ErrStoreNotLoaded
	}

	i := s.indexLocked(id)
	if i < 0 {
		return entity.Lead{}, ErrLeadNotFound
	}

	now := s.clock.Now()
	reminder := now.Add(7 * 24 * time.Hour)

	lead := &s.leads[i]
	lead.LastContacted = &now
	lead.ReminderDate = &reminder

	err := s.persistLocked(ctx, MutationEvent{Kind: MutationContacted, LeadID: id, Lead: cloneLead(*lead)})
	return cloneLead(*lead), err
}

// AppendNote adds a dated entry to the lead's notes. Whitespace-only
// text is a silent no-op. The first note is stored verbatim; later ones
// are separated by a blank line and prefixed with the date.
func (s *LeadStore) AppendNote(ctx context.Context, id, text string) (entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return entity.Lead{}, ErrStoreNotLoaded
	}

	i := s.indexLocked(id)
	if i < 0 {
		return entity.Lead{}, ErrLeadNotFound
	}

	lead := &s.leads[i]
	if strings.TrimSpace(text) == "" {
		return cloneLead(*lead), nil
	}

	if lead.Notes == "" {
		lead.Notes = text
	} else {
		lead.Notes += "\n\n" + s.clock.Now().Format("1/2/2006") + ": " + text
	}

	err := s.persistLocked(ctx, MutationEvent{Kind: MutationNote, LeadID: id, Lead: cloneLead(*lead)})
	return cloneLead(*lead), err
}
