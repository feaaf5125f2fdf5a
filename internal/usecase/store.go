package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/xavierca1/leadtrack/internal/entity"
)

// Mutation kinds reported to listeners.
const (
	MutationAdd       = "add"
	MutationUpdate    = "update"
	MutationDelete    = "delete"
	MutationContacted = "contacted"
	MutationNote      = "note"
)

type MutationEvent struct {
	Kind   string      `json:"kind"`
	LeadID string      `json:"leadId"`
	Lead   entity.Lead `json:"lead"` // zero value for deletes
}

type MutationListener func(MutationEvent)

// ErrStoreNotLoaded guards against queries or mutations before Load has
// completed (or failed into the seed fallback).
var ErrStoreNotLoaded = errors.New("lead store not loaded")

// LeadStore is the single source of truth for the lead collection.
// Insertion order is kept newest-first; every mutation re-serializes the
// full collection to the blob store. Mutations are serialized by a mutex,
// which also keeps saves ordered relative to each other.
type LeadStore struct {
	mu        sync.Mutex
	blob      entity.LeadBlobStore
	clock     entity.Clock
	logger    *slog.Logger
	leads     []entity.Lead
	loaded    bool
	listeners []MutationListener
}

func NewLeadStore(blob entity.LeadBlobStore, clock entity.Clock, logger *slog.Logger) *LeadStore {
	return &LeadStore{
		blob:   blob,
		clock:  clock,
		logger: logger.With("component", "lead_store"),
	}
}

// OnMutation registers a listener invoked after every successful mutation.
// Register before Load; the list is not guarded afterwards.
func (s *LeadStore) OnMutation(fn MutationListener) {
	s.listeners = append(s.listeners, fn)
}

// Load primes the store from the blob store. An absent or empty blob is
// seeded with the demo dataset and persisted immediately. Malformed data
// is also recovered with the seed dataset, but the parse error is
// returned (wrapped in *PersistenceError) so the caller can report the
// recovery rather than lose data silently.
func (s *LeadStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads, found, err := s.blob.Load(ctx)
	if err != nil {
		s.logger.Warn("blob store unreadable, falling back to seed data", "error", err)
		s.seedLocked(ctx)
		return &PersistenceError{Op: "load", Err: err}
	}
	if !found || len(leads) == 0 {
		s.logger.Info("blob store empty, seeding demo leads")
		s.seedLocked(ctx)
		return nil
	}

	s.leads = leads
	s.loaded = true
	return nil
}

func (s *LeadStore) seedLocked(ctx context.Context) {
	s.leads = SeedLeads(s.clock.Now())
	s.loaded = true
	if err := s.blob.Save(ctx, s.snapshotLocked()); err != nil {
		s.logger.Error("failed to persist seed data", "error", err)
	}
}

// Add validates the input, assigns a fresh id and creation time, and
// prepends the lead so the collection stays newest-first. The returned
// error may be a ValidationErrors (lead not created) or a
// *PersistenceError (lead created in memory, save failed).
func (s *LeadStore) Add(ctx context.Context, input CreateLeadInput) (entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return entity.Lead{}, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return entity.Lead{}, ErrStoreNotLoaded
	}

	status := input.Status
	if status == "" {
		status = entity.StatusCold
	}

	lead := entity.Lead{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Source:    input.Source,
		Status:    status,
		Notes:     input.Notes,
		CreatedAt: s.clock.Now(),
	}

	s.leads = append([]entity.Lead{lead}, s.leads...)
	err := s.persistLocked(ctx, MutationEvent{Kind: MutationAdd, LeadID: lead.ID, Lead: lead})
	return lead, err
}

// Update merges non-nil fields of input into the lead matching id.
// Unknown ids report ErrLeadNotFound and leave the store untouched.
func (s *LeadStore) Update(ctx context.Context, id string, input UpdateLeadInput) (entity.Lead, error) {
	if errs := ValidateUpdateLeadInput(input); len(errs) > 0 {
		return entity.Lead{}, errs
	}

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
	if input.Name != nil {
		lead.Name = *input.Name
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.Phone != nil {
		lead.Phone = *input.Phone
	}
	if input.Source != nil {
		lead.Source = *input.Source
	}
	if input.Status != nil {
		lead.Status = *input.Status
	}
	if input.Notes != nil {
		lead.Notes = *input.Notes
	}
	if input.LastContacted != nil {
		t := *input.LastContacted
		lead.LastContacted = &t
	}
	if input.ReminderDate != nil {
		t := *input.ReminderDate
		lead.ReminderDate = &t
	}

	err := s.persistLocked(ctx, MutationEvent{Kind: MutationUpdate, LeadID: id, Lead: cloneLead(*lead)})
	return cloneLead(*lead), err
}

// Delete removes the lead matching id. Unknown ids report
// ErrLeadNotFound; nothing cascades.
func (s *LeadStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrStoreNotLoaded
	}

	i := s.indexLocked(id)
	if i < 0 {
		return ErrLeadNotFound
	}

	s.leads = append(s.leads[:i], s.leads[i+1:]...)
	return s.persistLocked(ctx, MutationEvent{Kind: MutationDelete, LeadID: id})
}

// GetByID returns a copy of the lead, so callers cannot mutate the
// store behind Update's back.
func (s *LeadStore) GetByID(id string) (entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return entity.Lead{}, ErrStoreNotLoaded
	}

	i := s.indexLocked(id)
	if i < 0 {
		return entity.Lead{}, ErrLeadNotFound
	}
	return cloneLead(s.leads[i]), nil
}

// Snapshot returns a copy of the collection in store order
// (newest insert first).
func (s *LeadStore) Snapshot() []entity.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *LeadStore) snapshotLocked() []entity.Lead {
	out := make([]entity.Lead, len(s.leads))
	for i, l := range s.leads {
		out[i] = cloneLead(l)
	}
	return out
}

// cloneLead copies the optional timestamps too, so callers never hold
// pointers into the store's own records.
func cloneLead(l entity.Lead) entity.Lead {
	if l.LastContacted != nil {
		t := *l.LastContacted
		l.LastContacted = &t
	}
	if l.ReminderDate != nil {
		t := *l.ReminderDate
		l.ReminderDate = &t
	}
	return l
}

func (s *LeadStore) indexLocked(id string) int {
	for i := range s.leads {
		if s.leads[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the full collection after a mutation and fans
// the event out to listeners. A failed save is returned as a
// *PersistenceError; the in-memory state stays authoritative and the
// next mutation retries a full save anyway.
func (s *LeadStore) persistLocked(ctx context.Context, ev MutationEvent) error {
	var saveErr error
	if err := s.blob.Save(ctx, s.snapshotLocked()); err != nil {
		s.logger.Error("failed to persist leads", "kind", ev.Kind, "lead_id", ev.LeadID, "error", err)
		saveErr = &PersistenceError{Op: "save", Err: err}
	}

	for _, fn := range s.listeners {
		fn(ev)
	}
	return saveErr
}
