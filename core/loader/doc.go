// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface, which names the feature,
// reports whether it is enabled and registers its routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager keeps the registry: Register adds a feature and LoadAll loads the
// enabled ones in registration order.
package loader
