package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/panjf2000/ants/v2"
)

// WorkerPoolProcessingService implements the ProcessingService interface
type WorkerPoolProcessingService struct {
	baseService ProcessingService
	pool        *ants.Pool
	logger      *slog.Logger
	// Use a mutex to protect access to the results map
	mu      sync.Mutex
	results map[string]chan error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolProcessingService(
	baseService ProcessingService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProcessingService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolProcessingService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan error),
	}, nil
}

// ProcessAdvisory submits an advisory request to the worker pool for processing.
func (s *WorkerPoolProcessingService) ProcessAdvisory(ctx context.Context, request *shared.AdvisoryRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Submitting advisory request to worker pool",
		"request_id", request.RequestID.String(),
		"commodity", request.CommodityName,
	)

	resultChan := make(chan error, 1)

	requestID := request.RequestID.String()
	s.mu.Lock()
	s.results[requestID] = resultChan
	s.mu.Unlock()

	// Copy the request to avoid data races with the caller
	requestCopy := *request

	err := s.pool.Submit(func() {
		err := s.baseService.ProcessAdvisory(ctx, &requestCopy)

		resultChan <- err

		s.mu.Lock()
		delete(s.results, requestID)
		close(resultChan)
		s.mu.Unlock()
	})

	if err != nil {
		s.mu.Lock()
		delete(s.results, requestID)
		close(resultChan)
		s.mu.Unlock()

		logger.Error("Failed to submit advisory request to worker pool",
			"request_id", request.RequestID.String(),
			"error", err,
		)
		return err
	}

	// Wait for the result from the worker
	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolProcessingService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolProcessingService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolProcessingService) Capacity() int {
	return s.pool.Cap()
}
