package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header echoing the ray ID.
const HeaderName = "X-Ray-ID"

// LocalsKey is the fiber.Ctx locals key holding the ray ID.
const LocalsKey = "ray_id"

// New returns middleware that assigns each request a ray ID. An incoming
// X-Ray-ID header is reused so callers can correlate across services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
