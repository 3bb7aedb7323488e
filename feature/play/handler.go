package play

import (
	"storelisting/core/locale"
	"storelisting/core/logger"
	"storelisting/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for Play store listings.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the Play routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/play")
	group.Get("/:package/metadata", h.HandleGetMetadata)
	group.Put("/:package/metadata", h.HandleSetMetadata)
}

// HandleGetMetadata returns the unified snapshot of a package.
func (h *Handler) HandleGetMetadata(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	locales, err := locale.ParseList(c.Query("locale"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	snapshot, err := h.service.GetMetadata(c.Context(), c.Params("package"), locales)
	if err != nil {
		l.Error("Play metadata read failed", zap.Error(err))
		return server.SendError(c, err, nil)
	}
	return c.JSON(snapshot)
}

// HandleSetMetadata reconciles the request body document against the package.
func (h *Handler) HandleSetMetadata(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := ParseDocument(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := h.service.SetMetadata(c.Context(), c.Params("package"), records, c.QueryBool("dryRun"))
	if err != nil {
		l.Error("Play metadata update failed", zap.Error(err))
		return server.SendError(c, err, summary)
	}
	return c.JSON(summary)
}
