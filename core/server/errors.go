package server

import (
	"errors"

	"storelisting/core/reconcile"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a reconciliation error onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, reconcile.ErrPrecondition), errors.Is(err, reconcile.ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, reconcile.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, reconcile.ErrRemote):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// SendError writes err as a JSON body. Validation violations and available
// locales are included so clients can act on them; summary is attached when
// a partial run has something to report.
func SendError(c *fiber.Ctx, err error, summary *reconcile.Summary) error {
	body := fiber.Map{"error": err.Error()}

	var vf *reconcile.ValidationFailure
	if errors.As(err, &vf) {
		body["violations"] = vf.Violations
	}
	var nf *reconcile.NotFoundFailure
	if errors.As(err, &nf) && len(nf.Available) > 0 {
		body["available"] = nf.Available
	}
	if summary != nil && (len(summary.Created) > 0 || len(summary.Updated) > 0 || summary.Failed != nil) {
		body["summary"] = summary
	}
	return c.Status(StatusFor(err)).JSON(body)
}
