package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

type MonitorResult struct {
	Provider       string  `json:"provider"`
	Available      bool    `json:"available"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Error          string  `json:"error,omitempty"`
}

// MonitorService probes provider authentication round trips.
type MonitorService struct {
	registry *provider.Registry
	timeout  time.Duration
	logger   *logging.Logger
}

func NewMonitorService(registry *provider.Registry, timeout time.Duration, logger *logging.Logger) *MonitorService {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = DefaultPassTimeout
	}
	return &MonitorService{registry: registry, timeout: timeout, logger: logger}
}

// Monitor probes one provider. An unreachable provider is a result, not an
// error; only an unknown provider name fails.
func (s *MonitorService) Monitor(ctx context.Context, providerName string) (MonitorResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MonitorService.Monitor", attribute.String("esport.provider", providerName))
	defer span.End()

	adapter, err := s.registry.ResolveName(providerName)
	if err != nil {
		return MonitorResult{}, err
	}
	return s.probe(ctx, adapter), nil
}

// MonitorAll probes every registered provider concurrently.
func (s *MonitorService) MonitorAll(ctx context.Context) []MonitorResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.MonitorService.MonitorAll")
	defer span.End()

	providers := s.registry.Providers()
	p := pool.NewWithResults[MonitorResult]().WithMaxGoroutines(len(providers) + 1)
	for _, name := range providers {
		name := name
		p.Go(func() MonitorResult {
			adapter, err := s.registry.Resolve(name)
			if err != nil {
				return MonitorResult{Provider: name.String(), Error: err.Error()}
			}
			return s.probe(ctx, adapter)
		})
	}

	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].Provider < results[j].Provider })
	return results
}

func (s *MonitorService) probe(ctx context.Context, adapter provider.Adapter) MonitorResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result := MonitorResult{Provider: adapter.Provider.String()}
	elapsed, err := adapter.Source.Monitor(ctx)
	result.ElapsedSeconds = elapsed.Seconds()
	if err != nil {
		result.Error = err.Error()
		reason := "unavailable"
		if errors.Is(err, ErrAuthentication) {
			reason = "authentication_failed"
		}
		s.logger.WarnContext(ctx, "provider monitor failed",
			"provider", adapter.Provider.String(),
			"reason", reason,
			"error", err,
		)
		return result
	}
	result.Available = true
	return result
}
