package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-api/internal/contact"
	"github.com/Zachkp/portfolio-api/internal/logger"
	"github.com/Zachkp/portfolio-api/internal/metrics"
	"github.com/Zachkp/portfolio-api/internal/projects"
	"github.com/Zachkp/portfolio-api/internal/sheet"
)

// identityHeader tells clients how a detail lookup was resolved.
const identityHeader = "X-Project-Identity"

type SheetSource interface {
	Fetch(ctx context.Context) ([]*sheet.Record, error)
}

type ContactRelay interface {
	Submit(ctx context.Context, s contact.Submission) contact.Result
}

type Handler struct {
	sheets    SheetSource
	relay     ContactRelay
	metrics   *metrics.Metrics
	log       *logger.Logger
	requireID bool
}

func NewHandler(sheets SheetSource, relay ContactRelay, m *metrics.Metrics, log *logger.Logger, requireID bool) *Handler {
	return &Handler{sheets: sheets, relay: relay, metrics: m, log: log, requireID: requireID}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/sheet", h.GetSheet)
	r.GET("/sections", h.ListSections)
	r.GET("/projects", h.ListProjects)
	r.GET("/projects/:id", h.GetProject)
	r.POST("/contact", h.SubmitContact)
}

// fetch loads the workbook and answers 500 {"error"} on failure. The bool
// result is false when the response has already been written.
func (h *Handler) fetch(c *gin.Context) ([]*sheet.Record, bool) {
	records, err := h.sheets.Fetch(c.Request.Context())
	if err != nil {
		stage := string(sheet.StageOf(err))
		if stage == "" {
			stage = "error"
		}
		h.metrics.SheetFetches.WithLabelValues(stage).Inc()
		h.log.ErrorwCtx(c.Request.Context(), "sheet fetch failed", "stage", stage, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	h.metrics.SheetFetches.WithLabelValues("ok").Inc()
	return records, true
}

// GetSheet returns the raw worksheet rows.
func (h *Handler) GetSheet(c *gin.Context) {
	records, ok := h.fetch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) ListSections(c *gin.Context) {
	c.JSON(http.StatusOK, projects.Sections)
}

// ListProjects returns normalized projects, optionally narrowed by ?section=.
func (h *Handler) ListProjects(c *gin.Context) {
	records, ok := h.fetch(c)
	if !ok {
		return
	}
	items := projects.Filter(projects.Normalize(records), c.Query("section"))
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetProject(c *gin.Context) {
	records, ok := h.fetch(c)
	if !ok {
		return
	}

	id := c.Param("id")
	m, err := projects.Lookup(records, id, !h.requireID)
	if errors.Is(err, projects.ErrNotFound) {
		h.log.InfowCtx(c.Request.Context(), "project not found", "id", id)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if m.Identity == projects.IdentityIndex {
		h.log.WarnwCtx(c.Request.Context(), "project resolved by row position", "id", id)
	}
	c.Header(identityHeader, string(m.Identity))
	c.JSON(http.StatusOK, projects.FromMatch(m))
}

// SubmitContact relays the form. Provider failures are still 200 with
// success=false; only an unreadable body is a 400.
func (h *Handler) SubmitContact(c *gin.Context) {
	var s contact.Submission
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, contact.Result{Success: false, Error: "invalid request body"})
		return
	}

	res := h.relay.Submit(c.Request.Context(), s)
	if res.Success {
		h.metrics.ContactSends.WithLabelValues("ok").Inc()
	} else {
		h.metrics.ContactSends.WithLabelValues("error").Inc()
	}
	c.JSON(http.StatusOK, res)
}
