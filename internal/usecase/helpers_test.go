package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/xavierca1/leadtrack/internal/entity"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// memBlob is an in-memory LeadBlobStore with switchable failure modes.
type memBlob struct {
	leads     []entity.Lead
	found     bool
	loadErr   error
	saveErr   error
	saveCount int
}

func (b *memBlob) Load(_ context.Context) ([]entity.Lead, bool, error) {
	if b.loadErr != nil {
		return nil, false, b.loadErr
	}
	out := make([]entity.Lead, len(b.leads))
	copy(out, b.leads)
	return out, b.found, nil
}

func (b *memBlob) Save(_ context.Context, leads []entity.Lead) error {
	b.saveCount++
	if b.saveErr != nil {
		return b.saveErr
	}
	b.leads = make([]entity.Lead, len(leads))
	copy(b.leads, leads)
	b.found = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(blob *memBlob, now time.Time) *LeadStore {
	return NewLeadStore(blob, fixedClock{t: now}, testLogger())
}

func tsp(t time.Time) *time.Time { return &t }
