package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/repofit/repofit/internal/analysis"
)

// Handler translates HTTP requests into calls on the analysis.Service.
type Handler struct {
	svc *analysis.Service
	log *slog.Logger
}

// RegisterRoutes mounts the repofit analysis API onto the given Gin engine.
func RegisterRoutes(r *gin.Engine, svc *analysis.Service, log *slog.Logger) {
	h := &Handler{svc: svc, log: log}

	r.POST("/analyses", h.Analyze)
	r.GET("/analyses", h.List)
	r.GET("/analyses/:id", h.GetReport)
	r.DELETE("/analyses/:id", h.DeleteReport)
}
