package middlewares

import (
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/services/shared/metrics"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	SessionService contracts.SessionService
	InternalConfig *config.InternalConfig
	Metrics        *metrics.Metrics
}

func NewMiddlewares(logger *zap.Logger, sessionService contracts.SessionService, internalConfig *config.InternalConfig, m *metrics.Metrics) *Middlewares {
	return &Middlewares{
		Log:            logger,
		SessionService: sessionService,
		InternalConfig: internalConfig,
		Metrics:        m,
	}
}
