package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadtrack/internal/entity"
	"github.com/xavierca1/leadtrack/internal/usecase"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

type memBlob struct {
	leads []entity.Lead
	found bool
}

func (b *memBlob) Load(_ context.Context) ([]entity.Lead, bool, error) {
	out := make([]entity.Lead, len(b.leads))
	copy(out, b.leads)
	return out, b.found, nil
}

func (b *memBlob) Save(_ context.Context, leads []entity.Lead) error {
	b.leads = make([]entity.Lead, len(leads))
	copy(b.leads, leads)
	b.found = true
	return nil
}

var handlerNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T, seed []entity.Lead) (*chi.Mux, *usecase.LeadStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := fixedClock{t: handlerNow}
	store := usecase.NewLeadStore(&memBlob{leads: seed, found: true}, clock, logger)
	require.NoError(t, store.Load(context.Background()))

	leadHandler := NewLeadHandler(store, logger)
	followUpHandler := NewFollowUpHandler(store, clock, nil, "", logger)

	r := chi.NewRouter()
	r.Route("/leads", func(r chi.Router) {
		r.Get("/", leadHandler.List)
		r.Post("/", leadHandler.Create)
		r.Get("/{id}", leadHandler.Get)
		r.Put("/{id}", leadHandler.Update)
		r.Delete("/{id}", leadHandler.Delete)
		r.Post("/{id}/contacted", leadHandler.MarkContacted)
		r.Post("/{id}/notes", leadHandler.AppendNote)
	})
	r.Get("/followups", followUpHandler.List)
	r.Post("/followups/digest", followUpHandler.SendDigest)

	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func seedLead(id, name, email, status string, createdAt time.Time) entity.Lead {
	return entity.Lead{
		ID: id, Name: name, Email: email, Phone: "(555) 000-0000",
		Source: "Website", Status: status, CreatedAt: createdAt,
	}
}

func TestLeadHandler_CreateAndGet(t *testing.T) {
	r, _ := newTestRouter(t, []entity.Lead{})

	rec := doJSON(t, r, http.MethodPost, "/leads", usecase.CreateLeadInput{
		Name:   "John Smith",
		Email:  "john@example.com",
		Phone:  "(555) 111-2222",
		Source: "Open House",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, entity.StatusCold, created.Status)

	rec = doJSON(t, r, http.MethodGet, "/leads/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "John Smith", got.Name)
}

func TestLeadHandler_CreateValidation(t *testing.T) {
	r, _ := newTestRouter(t, []entity.Lead{})

	rec := doJSON(t, r, http.MethodPost, "/leads", usecase.CreateLeadInput{Email: "bad"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error  string `json:"error"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error)
	assert.NotEmpty(t, resp.Fields)
}

func TestLeadHandler_ListSearchAndFilter(t *testing.T) {
	r, _ := newTestRouter(t, []entity.Lead{
		seedLead("1", "Sarah Johnson", "sarah.j@email.com", entity.StatusHot, handlerNow),
		seedLead("2", "Mike Chen", "mike.chen@email.com", entity.StatusWarm, handlerNow),
	})

	rec := doJSON(t, r, http.MethodGet, "/leads?q=SARAH", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var leads []entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leads))
	require.Len(t, leads, 1)
	assert.Equal(t, "Sarah Johnson", leads[0].Name)

	rec = doJSON(t, r, http.MethodGet, "/leads?status=Warm", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leads))
	require.Len(t, leads, 1)
	assert.Equal(t, "Mike Chen", leads[0].Name)

	rec = doJSON(t, r, http.MethodGet, "/leads?status=Lukewarm", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeadHandler_UpdateAndDelete(t *testing.T) {
	r, _ := newTestRouter(t, []entity.Lead{
		seedLead("1", "Sarah Johnson", "sarah.j@email.com", entity.StatusHot, handlerNow),
	})

	rec := doJSON(t, r, http.MethodPut, "/leads/1", map[string]string{"status": entity.StatusCold})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, entity.StatusCold, updated.Status)
	assert.Equal(t, "Sarah Johnson", updated.Name)

	rec = doJSON(t, r, http.MethodDelete, "/leads/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/leads/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPut, "/leads/1", map[string]string{"status": entity.StatusHot})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadHandler_MarkContactedAndNotes(t *testing.T) {
	day := 24 * time.Hour
	r, _ := newTestRouter(t, []entity.Lead{
		seedLead("1", "Sarah Johnson", "sarah.j@email.com", entity.StatusHot, handlerNow.Add(-10*day)),
	})

	rec := doJSON(t, r, http.MethodPost, "/leads/1/contacted", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lead entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	require.NotNil(t, lead.LastContacted)
	assert.True(t, lead.LastContacted.Equal(handlerNow))
	require.NotNil(t, lead.ReminderDate)
	assert.True(t, lead.ReminderDate.Equal(handlerNow.Add(7*day)))

	rec = doJSON(t, r, http.MethodPost, "/leads/1/notes", map[string]string{"text": "Asked about open houses"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	assert.Equal(t, "Asked about open houses", lead.Notes)
}

func TestFollowUpHandler_List(t *testing.T) {
	day := 24 * time.Hour
	reminder := handlerNow.Add(-48 * time.Hour)
	stale := seedLead("overdue", "Overdue Lead", "o@example.com", entity.StatusWarm, handlerNow)
	stale.ReminderDate = &reminder

	r, _ := newTestRouter(t, []entity.Lead{
		seedLead("fresh", "Fresh Lead", "f@example.com", entity.StatusCold, handlerNow.Add(-1*day)),
		stale,
	})

	rec := doJSON(t, r, http.MethodGet, "/followups", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ranked []usecase.RankedLead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranked))
	require.Len(t, ranked, 1)
	assert.Equal(t, "overdue", ranked[0].Lead.ID)
	assert.Equal(t, usecase.TierOverdue, ranked[0].Urgency.Label)
	assert.Equal(t, 1, ranked[0].Urgency.Priority)
}

func TestFollowUpHandler_DigestNotConfigured(t *testing.T) {
	r, _ := newTestRouter(t, []entity.Lead{})

	rec := doJSON(t, r, http.MethodPost, "/followups/digest", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
