// Package shared holds the closed enumerations used across the procurement
// pipeline. Every variant set is matched exhaustively at the pricing and
// filtering boundaries so that a new variant shows up as a compile-time or
// parse-time failure instead of a silent default.
package shared

import (
	"errors"
	"strings"
)

var (
	ErrInvalidGrade           = errors.New("invalid quality grade")
	ErrInvalidSourceType      = errors.New("invalid source type")
	ErrInvalidUnit            = errors.New("invalid quantity unit")
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")
)

// Grade is the quality classification driving the price multiplier.
// Grade D produce is categorically unpaid and never enters a draft.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// ParseGrade accepts the payable grades only. Grade D is rejected here
// because unpaid produce has no place in a priced transaction.
func ParseGrade(s string) (Grade, error) {
	switch Grade(strings.ToUpper(s)) {
	case GradeA:
		return GradeA, nil
	case GradeB:
		return GradeB, nil
	case GradeC:
		return GradeC, nil
	}
	return "", ErrInvalidGrade
}

// SourceType classifies the counterparty category of a transaction.
type SourceType string

const (
	SourceTypeFarmer     SourceType = "FARMER"
	SourceTypeVendor     SourceType = "VENDOR"
	SourceTypeAggregator SourceType = "AGGREGATOR"
	SourceTypeUnion      SourceType = "UNION"
)

func ParseSourceType(s string) (SourceType, error) {
	switch SourceType(strings.ToUpper(s)) {
	case SourceTypeFarmer:
		return SourceTypeFarmer, nil
	case SourceTypeVendor:
		return SourceTypeVendor, nil
	case SourceTypeAggregator:
		return SourceTypeAggregator, nil
	case SourceTypeUnion:
		return SourceTypeUnion, nil
	}
	return "", ErrInvalidSourceType
}

// Unit is the quantity unit of a transaction. One quintal is 100 kg.
type Unit string

const (
	UnitKilogram Unit = "KILOGRAM"
	UnitQuintal  Unit = "QUINTAL"
)

func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToUpper(s)) {
	case UnitKilogram:
		return UnitKilogram, nil
	case UnitQuintal:
		return UnitQuintal, nil
	}
	return "", ErrInvalidUnit
}

// TransactionKind separates inbound procurement from outbound sales.
type TransactionKind string

const (
	KindProcurement TransactionKind = "PROCUREMENT"
	KindSales       TransactionKind = "SALES"
)

func ParseTransactionKind(s string) (TransactionKind, error) {
	switch TransactionKind(strings.ToUpper(s)) {
	case KindProcurement:
		return KindProcurement, nil
	case KindSales:
		return KindSales, nil
	}
	return "", ErrInvalidTransactionKind
}

// DefaultSourceType is the source type pre-selected when a new entry wizard
// opens: farmers supply procurement, vendors receive sales.
func (k TransactionKind) DefaultSourceType() SourceType {
	if k == KindSales {
		return SourceTypeVendor
	}
	return SourceTypeFarmer
}

// TransactionStatus defines committed record states. Records are immutable
// once committed, so LOCKED is the only value a ledger record ever carries.
type TransactionStatus string

const (
	TransactionStatusLocked TransactionStatus = "LOCKED"
)

// AdvisoryStatus defines the observable states of an advisory broadcast task.
type AdvisoryStatus string

const (
	AdvisoryStatusPending   AdvisoryStatus = "PENDING"
	AdvisoryStatusSucceeded AdvisoryStatus = "SUCCEEDED"
	AdvisoryStatusFailed    AdvisoryStatus = "FAILED"
)

// FailureReason defines advisory processing failure categories
type FailureReason string

const (
	FailureReasonUnknownCommodity FailureReason = "UNKNOWN_COMMODITY"
	FailureReasonGenerationFailed FailureReason = "GENERATION_FAILED"
	FailureReasonUnknownError     FailureReason = "UNKNOWN_ERROR"
)

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
