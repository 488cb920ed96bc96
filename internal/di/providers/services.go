package providers

import (
	"github.com/samber/do/v2"

	"github.com/booknest/booknest-server/internal/logger"
	"github.com/booknest/booknest-server/internal/metrics"
	"github.com/booknest/booknest-server/internal/service"
	"github.com/booknest/booknest-server/internal/validation"
)

// ProvideBookListService provides the book-list consistency service.
func ProvideBookListService(i do.Injector) (*service.BookListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookListService(storeHandle.Store, v, m, log.Logger), nil
}

// ProvideFeedbackService provides the feedback service.
func ProvideFeedbackService(i do.Injector) (*service.FeedbackService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFeedbackService(storeHandle.Store, v, m, log.Logger), nil
}
