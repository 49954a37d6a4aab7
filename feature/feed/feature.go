package feed

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the feed service into the application.
type Feature struct {
	service *Service
	logger  *zap.Logger
	apiKey  string
}

// NewFeature creates the feed feature.
func NewFeature(service *Service, logger *zap.Logger, apiKey string) *Feature {
	return &Feature{service: service, logger: logger, apiKey: apiKey}
}

func (f *Feature) Name() string { return "feed" }

func (f *Feature) IsEnabled() bool { return true }

// Load registers the feed routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service, f.logger).RegisterRoutes(app, f.apiKey)
	return nil
}

// Service exposes the underlying service for the triggers and CLI.
func (f *Feature) Service() *Service { return f.service }
