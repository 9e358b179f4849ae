package sales

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the sales feature. A nil service disables it.
func NewFeature(service *Service) *Feature {
	f := &Feature{service: service}
	if service != nil {
		f.handler = NewHandler(service)
	}
	return f
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sales"
}

// IsEnabled reports whether a service is configured.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
