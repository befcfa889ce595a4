package srv

import (
	"context"
	"errors"
	"sync"

	"github.com/sandevgo/tuskmem/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices starts each service in its own goroutine. The first start
// error is delivered on the returned channel; the channel is closed once all
// services have returned.
func StartServices(ctx context.Context, services []Service) <-chan error {
	errs := make(chan error, 1)
	var wg sync.WaitGroup

	for _, service := range services {
		wg.Add(1)
		go func(service Service) {
			defer wg.Done()
			if err := service.Start(ctx); err != nil {
				log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to start", service)
				select {
				case errs <- err:
				default:
				}
			}
		}(service)
	}

	go func() {
		wg.Wait()
		close(errs)
	}()
	return errs
}

// ShutdownServices stops services in reverse order and joins their errors.
func ShutdownServices(ctx context.Context, services []Service) error {
	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
