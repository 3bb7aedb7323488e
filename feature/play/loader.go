package play

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	enabled bool
}

// NewFeature creates the Play feature. A nil service disables it.
func NewFeature(service *Service) *Feature {
	if service == nil {
		return &Feature{}
	}
	return &Feature{handler: NewHandler(service), enabled: true}
}

func (f *Feature) Name() string {
	return "play"
}

func (f *Feature) IsEnabled() bool {
	return f.enabled
}

func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
