// Package api implements the HTTP handlers for the query-understanding
// endpoints: course resolution, session search, and snapshot reload.
//
// Handlers are thin: they bind JSON, delegate to the resolver/search
// packages, and record metrics. All domain decisions live below this
// layer, so the same behavior is testable without HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rowanlock/coursefinder-go/internal/catalogue"
	"github.com/rowanlock/coursefinder-go/internal/datewindow"
	apperrors "github.com/rowanlock/coursefinder-go/internal/errors"
	"github.com/rowanlock/coursefinder-go/internal/location"
	"github.com/rowanlock/coursefinder-go/internal/logger"
	"github.com/rowanlock/coursefinder-go/internal/metrics"
	"github.com/rowanlock/coursefinder-go/internal/resolver"
	"github.com/rowanlock/coursefinder-go/internal/search"
	"github.com/rowanlock/coursefinder-go/internal/snapshot"
)

// Handler serves the query-understanding API against the current
// catalogue snapshot.
type Handler struct {
	snapshots       *snapshot.Manager
	log             *logger.Logger
	metrics         *metrics.Metrics
	suggestionLimit int

	// now is injectable so tests pin the reference day.
	now func() time.Time
}

// NewHandler creates the API handler. Metrics may be nil in tests.
func NewHandler(snapshots *snapshot.Manager, log *logger.Logger, m *metrics.Metrics, suggestionLimit int) *Handler {
	return &Handler{
		snapshots:       snapshots,
		log:             log.WithModule("api"),
		metrics:         m,
		suggestionLimit: suggestionLimit,
		now:             time.Now,
	}
}

// ResolveRequest is the body of POST /api/v1/resolve.
type ResolveRequest struct {
	Text string `json:"text" binding:"required"`
}

// ResolveResponse reports how free text was understood.
type ResolveResponse struct {
	Family     string                 `json:"family,omitempty"`
	Refresher  resolver.RefresherPref `json:"refresher"`
	Label      string                 `json:"label,omitempty"`
	Validation resolver.Validation    `json:"validation"`
}

// Resolve maps free course text to a canonical family and classifies it.
func (h *Handler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		verr := apperrors.NewValidationError("text", "text is required")
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}

	q := resolver.Resolve(req.Text)
	v := resolver.ValidateWithLimit(req.Text, h.suggestionLimit)

	h.recordResolution(q)
	h.recordValidation(v)

	c.JSON(http.StatusOK, ResolveResponse{
		Family:     q.Family,
		Refresher:  q.Refresher,
		Label:      resolver.FamilyLabel(q),
		Validation: v,
	})
}

// SearchRequest is the body of POST /api/v1/search. Dates and Location are
// free text; empty values mean "next 8 weeks" and "anywhere".
type SearchRequest struct {
	Course   string `json:"course" binding:"required"`
	Dates    string `json:"dates"`
	Location string `json:"location"`
}

// WindowView is the wire form of the normalized date window.
type WindowView struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
	Label string     `json:"label"`
}

// SearchResponse carries either ranked results or, when the query needs
// clarification or nothing matched, the validation or diagnostics that
// explain what to ask next.
type SearchResponse struct {
	Validation  *resolver.Validation `json:"validation,omitempty"`
	Window      *WindowView          `json:"window,omitempty"`
	Location    string               `json:"location,omitempty"`
	Results     []search.Result      `json:"results,omitempty"`
	Diagnostics *search.Diagnostics  `json:"diagnostics,omitempty"`
}

// Search runs the full pipeline: validate the course text, normalize the
// date window and location, filter the snapshot, and fall back to staged
// diagnostics when nothing matches.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		verr := apperrors.NewValidationError("course", "course is required")
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}

	v := resolver.ValidateWithLimit(req.Course, h.suggestionLimit)
	h.recordValidation(v)
	if !v.Exists {
		c.JSON(http.StatusOK, SearchResponse{Validation: &v})
		return
	}

	sessions, err := h.snapshots.Sessions()
	if err != nil {
		h.log.WithError(err).Error("Search rejected, no snapshot loaded")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": apperrors.ErrSnapshotNotLoaded.Error()})
		return
	}

	now := h.now()
	window := datewindow.Normalize(req.Dates, now)
	facet := location.UserFacet(req.Location)

	params := search.Params{
		Family:    v.NormalizedFamily,
		Refresher: v.RefresherRequested,
		Location:  facet,
		Window:    &window,
		Now:       now,
	}

	started := time.Now()
	results := search.Search(sessions, params)
	resp := SearchResponse{
		Validation: &v,
		Window:     &WindowView{Start: window.Start, End: window.End, Label: window.Label},
		Location:   facet,
		Results:    results,
	}

	if len(results) == 0 {
		d := search.Diagnose(sessions, params)
		resp.Diagnostics = &d
		h.recordSearch("empty", 0, time.Since(started))
		h.recordDiagnosis(d.Reason)
	} else {
		h.recordSearch("hit", len(results), time.Since(started))
	}

	h.log.WithFields(map[string]any{
		"family":   params.Family,
		"location": facet,
		"window":   window.Label,
		"results":  len(results),
	}).InfoContext(c.Request.Context(), "Search completed")

	c.JSON(http.StatusOK, resp)
}

// Reload re-reads the catalogue snapshot file on demand.
func (h *Handler) Reload(c *gin.Context) {
	swapped, err := h.snapshots.Reload(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Snapshot reload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.GetUserMessage(err)})
		return
	}

	sessions, err := h.snapshots.Sessions()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": apperrors.ErrSnapshotNotLoaded.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reloaded": swapped,
		"sessions": len(sessions),
	})
}

// Ready reports whether a snapshot is loaded and how many sessions it has.
func (h *Handler) Ready(c *gin.Context) {
	snap, err := h.snapshots.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"sessions":  len(snap.Sessions),
		"loaded_at": snap.LoadedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) recordResolution(q resolver.Query) {
	if h.metrics == nil {
		return
	}
	switch {
	case q.Family == "":
		h.metrics.RecordResolution("unrecognized")
	case catalogue.IsGeneric(q.Family):
		h.metrics.RecordResolution("generic")
	default:
		h.metrics.RecordResolution("resolved")
	}
}

func (h *Handler) recordValidation(v resolver.Validation) {
	if h.metrics != nil {
		h.metrics.RecordValidation(string(v.Reason))
	}
}

func (h *Handler) recordSearch(outcome string, results int, d time.Duration) {
	if h.metrics != nil {
		h.metrics.RecordSearch(outcome, results, d.Seconds())
	}
}

func (h *Handler) recordDiagnosis(reason string) {
	if h.metrics != nil {
		h.metrics.RecordDiagnosis(reason)
	}
}
