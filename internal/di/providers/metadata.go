package providers

import (
	"github.com/samber/do/v2"

	"github.com/booknest/booknest-server/internal/config"
	"github.com/booknest/booknest-server/internal/logger"
	"github.com/booknest/booknest-server/internal/metadata/googlebooks"
	"github.com/booknest/booknest-server/internal/metrics"
)

// GoogleBooksClientHandle wraps the Google Books client with Shutdownable.
type GoogleBooksClientHandle struct {
	*googlebooks.Client
}

// Shutdown implements do.Shutdownable.
func (h *GoogleBooksClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideGoogleBooksClient provides the external book metadata client.
func ProvideGoogleBooksClient(i do.Injector) (*GoogleBooksClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	client := googlebooks.NewClient(cfg.Metadata.GoogleBooksBaseURL, m, log.Logger)

	return &GoogleBooksClientHandle{Client: client}, nil
}
