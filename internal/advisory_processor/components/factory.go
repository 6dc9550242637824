package components

import (
	"log/slog"

	"github.com/agrifed-procurement-ledger/internal/advisory_processor/service"
	"github.com/agrifed-procurement-ledger/internal/config"
	"github.com/agrifed-procurement-ledger/internal/domain/advisory"
	"github.com/agrifed-procurement-ledger/internal/domain/pricing"
)

// CreateProcessingService creates a new ProcessingService with all its dependencies.
func CreateProcessingService(
	advisoryRepo advisory.Repository,
	priceRepo pricing.Repository,
	logger *slog.Logger,
	cfg *config.Config,
) service.ProcessingService {
	generator := NewTemplateGenerator(logger, priceRepo)

	baseService := service.NewProcessingService(
		logger,
		advisoryRepo,
		generator,
	)

	workerPoolService, err := service.NewWorkerPoolProcessingService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)

	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool processing service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService
}
