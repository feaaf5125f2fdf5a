package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/xavierca1/leadtrack/internal/entity"
	"github.com/xavierca1/leadtrack/internal/infra/http/middleware"
	"github.com/xavierca1/leadtrack/internal/usecase"
)

// FollowUpDigester is implemented by the mail package. A nil digester
// means digest e-mails are not configured.
type FollowUpDigester interface {
	SendFollowUpDigest(to string, ranked []usecase.RankedLead, now time.Time) error
}

type FollowUpHandler struct {
	store    *usecase.LeadStore
	clock    entity.Clock
	digester FollowUpDigester
	digestTo string
	logger   *slog.Logger
}

func NewFollowUpHandler(store *usecase.LeadStore, clock entity.Clock, digester FollowUpDigester, digestTo string, logger *slog.Logger) *FollowUpHandler {
	return &FollowUpHandler{
		store:    store,
		clock:    clock,
		digester: digester,
		digestTo: digestTo,
		logger:   logger.With("component", "followup_handler"),
	}
}

// List handles GET /followups: the ranked "who to contact next"
// sequence, most urgent first.
func (h *FollowUpHandler) List(w http.ResponseWriter, r *http.Request) {
	ranked := usecase.RankFollowUps(h.store.Snapshot(), h.clock.Now())
	writeJSON(w, http.StatusOK, ranked)
}

type digestResponse struct {
	Sent  bool `json:"sent"`
	Count int  `json:"count"`
}

// SendDigest handles POST /followups/digest: mails the current ranked
// list to the configured address.
func (h *FollowUpHandler) SendDigest(w http.ResponseWriter, r *http.Request) {
	if h.digester == nil || h.digestTo == "" {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "digest e-mail not configured"})
		return
	}

	now := h.clock.Now()
	ranked := usecase.RankFollowUps(h.store.Snapshot(), now)

	if err := h.digester.SendFollowUpDigest(h.digestTo, ranked, now); err != nil {
		h.logger.Error("failed to send follow-up digest", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to send digest"})
		return
	}

	middleware.RecordDigestSent()
	writeJSON(w, http.StatusOK, digestResponse{Sent: true, Count: len(ranked)})
}
