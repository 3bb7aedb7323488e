package appstore

import (
	"storelisting/core/locale"
	"storelisting/core/logger"
	"storelisting/core/reconcile"
	"storelisting/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for App Store metadata.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the App Store routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/appstore")
	group.Get("/:appId/metadata", h.HandleGetMetadata)
	group.Put("/:appId/metadata", h.HandleSetMetadata)
}

// HandleGetMetadata returns the unified snapshot of an app.
// Query: from=live|editable (default live), locale=comma separated list.
func (h *Handler) HandleGetMetadata(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	from, err := reconcile.ParsePreference(c.Query("from", string(reconcile.PreferLive)))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	locales, err := locale.ParseList(c.Query("locale"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	snapshot, err := h.service.GetMetadata(c.Context(), c.Params("appId"), from, locales)
	if err != nil {
		l.Error("App Store metadata read failed", zap.Error(err))
		return server.SendError(c, err, nil)
	}
	return c.JSON(snapshot)
}

// HandleSetMetadata reconciles the request body document against the app.
// Query: dryRun=true plans without mutating.
func (h *Handler) HandleSetMetadata(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := ParseDocument(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := h.service.SetMetadata(c.Context(), c.Params("appId"), records, c.QueryBool("dryRun"))
	if err != nil {
		l.Error("App Store metadata update failed", zap.Error(err))
		return server.SendError(c, err, summary)
	}
	return c.JSON(summary)
}
