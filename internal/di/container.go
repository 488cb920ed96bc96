// Package di provides dependency injection configuration for the BookNest server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/booknest/booknest-server/internal/config"
	"github.com/booknest/booknest-server/internal/di/providers"
	"github.com/booknest/booknest-server/internal/logger"
	"github.com/booknest/booknest-server/internal/metrics"
	"github.com/booknest/booknest-server/internal/service"
	"github.com/booknest/booknest-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideMetrics)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Metadata layer
	do.Provide(injector, providers.ProvideGoogleBooksClient)

	// Business services
	do.Provide(injector, providers.ProvideBookListService)
	do.Provide(injector, providers.ProvideFeedbackService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.GoogleBooksClientHandle](injector)
	_ = do.MustInvoke[*service.BookListService](injector)
	_ = do.MustInvoke[*service.FeedbackService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
