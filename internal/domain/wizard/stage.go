package wizard

import (
	"errors"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
)

var (
	ErrAlreadyAtReview   = errors.New("wizard is already at the review stage")
	ErrNotAtReview       = errors.New("wizard is not at the review stage")
	ErrAtInitiation      = errors.New("wizard is at the first stage")
	ErrCaptureIncomplete = errors.New("counterparty name must be set before review")
)

// Stage identifies the active step of an entry wizard pass.
type Stage string

const (
	StageInitiation Stage = "INITIATION"
	StageCapture    Stage = "CAPTURE"
	StageReview     Stage = "REVIEW"
)

// Wizard is one entry pass: a stage pointer over a draft. Opening a new
// entry from the ledger list creates it at Initiation; committing from
// Review ends it. The transaction kind is fixed for the whole pass.
type Wizard struct {
	Stage Stage  `json:"stage"`
	Draft *Draft `json:"draft"`
}

// New starts a wizard pass of the given kind with a fresh draft.
func New(kind shared.TransactionKind) *Wizard {
	return &Wizard{
		Stage: StageInitiation,
		Draft: NewDraft(kind),
	}
}

// Advance moves the wizard one stage forward. Initiation to Capture is
// deliberately unguarded: all field validation is deferred to the Capture
// gate and the hard commit gate. Capture to Review requires a counterparty
// name, mirroring the one disabled-continue rule of the entry form.
func (w *Wizard) Advance() error {
	switch w.Stage {
	case StageInitiation:
		w.Stage = StageCapture
		return nil
	case StageCapture:
		if w.Draft.CounterpartyName == "" {
			return ErrCaptureIncomplete
		}
		w.Stage = StageReview
		return nil
	default:
		return ErrAlreadyAtReview
	}
}

// Back moves the wizard one stage backward without touching the draft.
// Backing out of Initiation is a cancel, which is the caller's call to make.
func (w *Wizard) Back() error {
	switch w.Stage {
	case StageReview:
		w.Stage = StageCapture
		return nil
	case StageCapture:
		w.Stage = StageInitiation
		return nil
	default:
		return ErrAtInitiation
	}
}

// ReadyToCommit reports whether the pass may be committed: the wizard must
// sit at Review and the draft must pass the hard commit gate.
func (w *Wizard) ReadyToCommit() error {
	if w.Stage != StageReview {
		return ErrNotAtReview
	}
	return w.Draft.ValidateForCommit()
}
