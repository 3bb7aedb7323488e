package journal

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	repo *Repository
}

// NewFeature creates the journal feature. A nil repository disables it.
func NewFeature(repo *Repository) *Feature {
	return &Feature{repo: repo}
}

func (f *Feature) Name() string {
	return "journal"
}

func (f *Feature) IsEnabled() bool {
	return f.repo != nil
}

func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.repo).RegisterRoutes(app)
	return nil
}
