package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/ledger"
	"github.com/agrifed-procurement-ledger/internal/domain/outbox"
	"github.com/agrifed-procurement-ledger/internal/domain/pricing"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/agrifed-procurement-ledger/internal/domain/wizard"
	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound indicates an unknown or expired wizard session
	ErrSessionNotFound = errors.New("wizard session not found")

	// ErrUnknownCommodity blocks a commit whose commodity has no published
	// price. A record must never be locked with a fabricated amount.
	ErrUnknownCommodity = errors.New("commodity has no published price")
)

// session is the server-side state of one wizard pass. Each session carries
// its own mutex so concurrent requests against the same session serialize
// while distinct sessions proceed independently.
type session struct {
	mu                sync.Mutex
	id                uuid.UUID
	wizard            *wizard.Wizard
	committedRecordID *uuid.UUID
	createdAt         time.Time
	updatedAt         time.Time
}

// WizardServiceImpl implements the WizardService interface with an in-memory
// session store. Drafts are deliberately not persisted: an abandoned pass
// leaves nothing behind once the TTL janitor sweeps it.
type WizardServiceImpl struct {
	mu         sync.RWMutex
	sessions   map[uuid.UUID]*session
	pricing    pricing.Repository
	ledgerRepo ledger.Repository
	outboxRepo outbox.Repository
	sessionTTL time.Duration
	logger     *slog.Logger
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// NewWizardService creates a new wizard service and starts its TTL janitor
func NewWizardService(
	logger *slog.Logger,
	pricingRepo pricing.Repository,
	ledgerRepo ledger.Repository,
	outboxRepo outbox.Repository,
	sessionTTL time.Duration,
) *WizardServiceImpl {
	s := &WizardServiceImpl{
		sessions:   make(map[uuid.UUID]*session),
		pricing:    pricingRepo,
		ledgerRepo: ledgerRepo,
		outboxRepo: outboxRepo,
		sessionTTL: sessionTTL,
		logger:     logger,
		stopCh:     make(chan struct{}),
	}

	go s.janitor()

	return s
}

// Stop terminates the TTL janitor
func (s *WizardServiceImpl) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *WizardServiceImpl) janitor() {
	interval := s.sessionTTL / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweepExpired()
		}
	}
}

func (s *WizardServiceImpl) sweepExpired() {
	cutoff := time.Now().Add(-s.sessionTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.updatedAt.Before(cutoff) {
			delete(s.sessions, id)
			s.logger.Info("Expired wizard session discarded", "session_id", id.String())
		}
	}
}

// Start opens a new wizard session of the given transaction kind
func (s *WizardServiceImpl) Start(ctx context.Context, kind shared.TransactionKind) (*WizardSession, error) {
	now := time.Now()
	sess := &session{
		id:        uuid.New(),
		wizard:    wizard.New(kind),
		createdAt: now,
		updatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("Wizard session started",
		"session_id", sess.id.String(),
		"kind", string(kind),
	)

	return s.view(ctx, sess), nil
}

func (s *WizardServiceImpl) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Get retrieves a session with a fresh price preview
func (s *WizardServiceImpl) Get(ctx context.Context, id uuid.UUID) (*WizardSession, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(ctx, sess), nil
}

// UpdateDraft applies a partial draft mutation to a session. Enum-valued
// fields are parsed strictly so an invalid grade or unit never lands in a
// draft.
func (s *WizardServiceImpl) UpdateDraft(ctx context.Context, id uuid.UUID, update DraftUpdate) (*WizardSession, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	draft := sess.wizard.Draft
	if update.SourceType != nil {
		st, err := shared.ParseSourceType(*update.SourceType)
		if err != nil {
			return nil, err
		}
		draft.SourceType = st
	}
	if update.CounterpartyName != nil {
		draft.CounterpartyName = *update.CounterpartyName
	}
	if update.CommodityName != nil {
		draft.CommodityName = *update.CommodityName
	}
	if update.Grade != nil {
		g, err := shared.ParseGrade(*update.Grade)
		if err != nil {
			return nil, err
		}
		draft.Grade = g
	}
	if update.Quantity != nil {
		draft.Quantity = *update.Quantity
	}
	if update.Unit != nil {
		u, err := shared.ParseUnit(*update.Unit)
		if err != nil {
			return nil, err
		}
		draft.Unit = u
	}
	if update.EffectiveDate != nil {
		draft.EffectiveDate = *update.EffectiveDate
	}
	if update.VehicleNumber != nil {
		draft.VehicleNumber = *update.VehicleNumber
	}
	if update.DriverName != nil {
		draft.DriverName = *update.DriverName
	}
	if update.DriverContact != nil {
		draft.DriverContact = *update.DriverContact
	}

	sess.updatedAt = time.Now()
	return s.view(ctx, sess), nil
}

// Advance moves the session one stage forward
func (s *WizardServiceImpl) Advance(ctx context.Context, id uuid.UUID) (*WizardSession, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.wizard.Advance(); err != nil {
		return nil, err
	}
	sess.updatedAt = time.Now()
	return s.view(ctx, sess), nil
}

// Back moves the session one stage backward without touching the draft
func (s *WizardServiceImpl) Back(ctx context.Context, id uuid.UUID) (*WizardSession, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.wizard.Back(); err != nil {
		return nil, err
	}
	sess.updatedAt = time.Now()
	return s.view(ctx, sess), nil
}

// Commit turns the draft into an immutable ledger record. The session mutex
// makes the commit idempotent under retries: a second commit of the same
// session returns the record written by the first.
func (s *WizardServiceImpl) Commit(ctx context.Context, id uuid.UUID, correlationID string) (*ledger.Record, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.committedRecordID != nil {
		record, err := s.ledgerRepo.GetByID(ctx, *sess.committedRecordID)
		if err != nil {
			s.logger.Error("Failed to load already-committed record",
				"session_id", id.String(),
				"record_id", sess.committedRecordID.String(),
				"error", err,
			)
			return nil, err
		}
		s.logger.Info("Commit replay for committed session",
			"session_id", id.String(),
			"record_id", record.ID.String(),
		)
		return record, nil
	}

	if err := sess.wizard.ReadyToCommit(); err != nil {
		return nil, err
	}

	draft := sess.wizard.Draft
	price, err := s.pricing.GetByName(ctx, draft.CommodityName)
	if err != nil {
		if errors.Is(err, pricing.ErrPriceNotFound{}) {
			return nil, ErrUnknownCommodity
		}
		return nil, err
	}

	unitPrice := pricing.UnitPrice(price.BasePricePerKg, draft.Grade, draft.Unit)
	record := &ledger.Record{
		ID:               uuid.New(),
		Kind:             draft.Kind,
		SourceType:       draft.SourceType,
		CounterpartyName: draft.CounterpartyName,
		CommodityName:    draft.CommodityName,
		Grade:            draft.Grade,
		Quantity:         draft.Quantity,
		Unit:             draft.Unit,
		EffectiveDate:    draft.EffectiveDate,
		VehicleNumber:    draft.VehicleNumber,
		DriverName:       draft.DriverName,
		DriverContact:    draft.DriverContact,
		UnitPrice:        unitPrice,
		TotalAmount:      unitPrice * draft.Quantity,
		Status:           shared.TransactionStatusLocked,
		CorrelationID:    correlationID,
		CreatedAt:        time.Now(),
	}

	if err := s.ledgerRepo.Create(ctx, record); err != nil {
		s.logger.Error("Failed to commit ledger record",
			"session_id", id.String(),
			"record_id", record.ID.String(),
			"error", err,
		)
		return nil, err
	}

	recordID := record.ID
	sess.committedRecordID = &recordID
	sess.updatedAt = time.Now()

	// The record is durable at this point. An outbox write failure only
	// delays the committed event, so it must not fail the commit.
	message, err := outbox.NewMessage(record)
	if err == nil {
		err = s.outboxRepo.Create(ctx, message)
	}
	if err != nil {
		s.logger.Error("Failed to enqueue committed event",
			"record_id", record.ID.String(),
			"error", err,
		)
	}

	s.logger.Info("Transaction committed",
		"session_id", id.String(),
		"record_id", record.ID.String(),
		"kind", string(record.Kind),
		"total_amount", record.TotalAmount,
	)

	return record, nil
}

// Cancel discards a session and its draft
func (s *WizardServiceImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.logger.Info("Wizard session canceled", "session_id", id.String())
	return nil
}

// view builds the API-facing session shape. The price preview degrades to
// zero when the commodity has no published price; the hard rejection of an
// unpriced commodity only happens at commit.
func (s *WizardServiceImpl) view(ctx context.Context, sess *session) *WizardSession {
	draft := sess.wizard.Draft

	var unitPrice float64
	if draft.CommodityName != "" {
		price, err := s.pricing.GetByName(ctx, draft.CommodityName)
		switch {
		case err == nil:
			unitPrice = pricing.UnitPrice(price.BasePricePerKg, draft.Grade, draft.Unit)
		case errors.Is(err, pricing.ErrPriceNotFound{}):
			// preview stays zero
		default:
			s.logger.Error("Failed to preview price",
				"session_id", sess.id.String(),
				"commodity", draft.CommodityName,
				"error", err,
			)
		}
	}

	return &WizardSession{
		ID:                sess.id,
		Wizard:            sess.wizard,
		UnitPrice:         unitPrice,
		TotalAmount:       unitPrice * draft.Quantity,
		CommittedRecordID: sess.committedRecordID,
		CreatedAt:         sess.createdAt,
		UpdatedAt:         sess.updatedAt,
	}
}
