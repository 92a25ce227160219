package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repofit/repofit/internal/analysis"
	"github.com/repofit/repofit/pkg/api"
)

// Analyze handles POST /analyses. It runs a full traversal of the requested
// repository and persists the resulting report before responding.
func (h *Handler) Analyze(c *gin.Context) {
	var req api.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.svc.Analyze(c.Request.Context(), req.Repository)
	if err != nil {
		var invalid analysis.InvalidRepoError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var meta analysis.MetadataError
		if errors.As(err, &meta) {
			h.log.Error("metadata lookup failed", "repo", meta.Repo, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("analysis failed", "repository", req.Repository, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, report)
}

// List handles GET /analyses.
func (h *Handler) List(c *gin.Context) {
	reports, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("list reports failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	if reports == nil {
		reports = []api.Report{}
	}
	c.JSON(http.StatusOK, reports)
}

// GetReport handles GET /analyses/:id.
func (h *Handler) GetReport(c *gin.Context) {
	report, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		var notFound analysis.ReportNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("get report failed", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// DeleteReport handles DELETE /analyses/:id.
func (h *Handler) DeleteReport(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Error("delete report failed", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete report"})
		return
	}
	c.Status(http.StatusNoContent)
}
