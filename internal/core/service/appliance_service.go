package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
	"github.com/lumenhub/appliance-portal/internal/core/ports"
	"github.com/lumenhub/appliance-portal/internal/pkg/metrics"
	"github.com/lumenhub/appliance-portal/pkg/logger"
)

type applianceService struct {
	relay ports.DeviceRelay
	log   zerolog.Logger
}

// NewApplianceService wraps relay so that every failure reads as
// domain.StatusUnknown. Nothing is retried and no state is kept.
func NewApplianceService(relay ports.DeviceRelay, log zerolog.Logger) ports.ApplianceService {
	return &applianceService{relay: relay, log: log}
}

func (s *applianceService) Status(ctx context.Context) domain.ApplianceStatus {
	return s.call(ctx, "status", s.relay.GetStatus)
}

func (s *applianceService) Toggle(ctx context.Context) domain.ApplianceStatus {
	return s.call(ctx, "toggle", s.relay.ToggleStatus)
}

func (s *applianceService) call(ctx context.Context, method string, fn func(context.Context) (domain.ApplianceStatus, error)) domain.ApplianceStatus {
	start := time.Now()
	status, err := fn(ctx)
	metrics.RelayCallDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RelayCallsTotal.WithLabelValues(method, "error").Inc()
		log := logger.FromContext(ctx, s.log)
		log.Error().Err(err).Str("method", method).Msg("device relay call failed")
		return domain.StatusUnknown
	}

	metrics.RelayCallsTotal.WithLabelValues(method, status.String()).Inc()
	return status
}
