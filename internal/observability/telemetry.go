package observability

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/esport-datanal/internal/config"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
)

type stopFunc func(context.Context) error

type component struct {
	name string
	stop stopFunc
}

// Telemetry holds the tracing and profiling resources of one process.
type Telemetry struct {
	logger  *logging.Logger
	running []component
}

// Start brings up tracing, continuous profiling and the pprof listener as
// enabled in cfg. process names the binary, e.g. "api" or "scheduler", and
// is reported as part of the service name.
func Start(cfg config.Config, process string, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger.Named("telemetry")}
	service := serviceName(cfg.ServiceName, process)

	starters := []struct {
		name  string
		start func() (stopFunc, error)
	}{
		{"uptrace", func() (stopFunc, error) { return startTracing(cfg, service, t.logger) }},
		{"pyroscope", func() (stopFunc, error) { return startProfiling(cfg, service, t.logger) }},
		{"pprof", func() (stopFunc, error) { return startPprof(cfg, t.logger) }},
	}
	for _, s := range starters {
		stop, err := s.start()
		if err != nil {
			_ = t.Shutdown(context.Background())
			return nil, errors.Wrapf(err, "start %s", s.name)
		}
		if stop != nil {
			t.running = append(t.running, component{name: s.name, stop: stop})
		}
	}
	return t, nil
}

// Shutdown stops everything Start brought up, last started first.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var err error
	for i := len(t.running) - 1; i >= 0; i-- {
		c := t.running[i]
		if stopErr := c.stop(ctx); stopErr != nil {
			err = errors.CombineErrors(err, errors.Wrapf(stopErr, "stop %s", c.name))
			continue
		}
		t.logger.Debug("telemetry component stopped", "component", c.name)
	}
	t.running = nil
	return err
}

// Running lists the enabled components in start order.
func (t *Telemetry) Running() []string {
	names := make([]string, len(t.running))
	for i, c := range t.running {
		names[i] = c.name
	}
	return names
}

func serviceName(base, process string) string {
	if process == "" || process == "api" {
		return base
	}
	return base + "-" + process
}
