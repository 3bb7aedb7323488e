package appstore

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	enabled bool
}

// NewFeature creates the App Store feature. A nil service disables it.
func NewFeature(service *Service) *Feature {
	if service == nil {
		return &Feature{}
	}
	return &Feature{handler: NewHandler(service), enabled: true}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "appstore"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
