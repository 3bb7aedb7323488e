package journal

import (
	"storelisting/core/logger"
	"storelisting/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the run journal over HTTP.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new HTTP handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers the journal routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/journal/runs", h.HandleListRuns)
}

// HandleListRuns lists recent runs. Query: backend, limit.
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	runs, err := h.repo.Recent(c.Context(), c.Query("backend"), c.QueryInt("limit", DefaultLimit))
	if err != nil {
		logger.WithRayID(h.repo.logger, c).Error("Failed to list runs", zap.Error(err))
		return server.SendError(c, err, nil)
	}
	return c.JSON(fiber.Map{"runs": runs})
}
