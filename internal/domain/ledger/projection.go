package ledger

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
)

var (
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("invalid sort order")
)

// FilterAll is the sentinel that disables an exact-match criterion.
// An empty string is treated the same way.
const FilterAll = "All"

// FilterCriteria is the transient, AND-ed criteria set applied to a ledger
// partition. Every criterion is optional.
type FilterCriteria struct {
	DateRangeStart *time.Time
	DateRangeEnd   *time.Time
	CommodityName  string
	Grade          string
	SourceType     string
}

// SortField enumerates the sortable columns of the ledger view.
type SortField string

const (
	SortFieldTimestamp   SortField = "TIMESTAMP"
	SortFieldTotalAmount SortField = "TOTAL_AMOUNT"
	SortFieldStatus      SortField = "STATUS"
	SortFieldID          SortField = "ID"
)

func ParseSortField(s string) (SortField, error) {
	switch SortField(strings.ToUpper(s)) {
	case SortFieldTimestamp:
		return SortFieldTimestamp, nil
	case SortFieldTotalAmount:
		return SortFieldTotalAmount, nil
	case SortFieldStatus:
		return SortFieldStatus, nil
	case SortFieldID:
		return SortFieldID, nil
	}
	return "", ErrInvalidSortField
}

// SortOrder is the direction of a ledger sort.
type SortOrder string

const (
	SortAscending  SortOrder = "ASC"
	SortDescending SortOrder = "DESC"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToUpper(s)) {
	case SortAscending:
		return SortAscending, nil
	case SortDescending:
		return SortDescending, nil
	}
	return "", ErrInvalidSortOrder
}

// SortSpec pairs a sort field with a direction.
type SortSpec struct {
	Field SortField
	Order SortOrder
}

// DefaultSortSpec is the ledger view's initial ordering: newest first.
func DefaultSortSpec() SortSpec {
	return SortSpec{Field: SortFieldTimestamp, Order: SortDescending}
}

// Toggle returns the spec after the user selects a field: re-selecting the
// current field flips the direction, a new field starts descending.
func (s SortSpec) Toggle(field SortField) SortSpec {
	if s.Field == field {
		if s.Order == SortDescending {
			return SortSpec{Field: field, Order: SortAscending}
		}
		return SortSpec{Field: field, Order: SortDescending}
	}
	return SortSpec{Field: field, Order: SortDescending}
}

// Partition keeps only the records of the given transaction kind. Every
// record belongs to exactly one partition, so the procurement and sales
// partitions are disjoint and their union is the full ledger.
func Partition(records []*Record, kind shared.TransactionKind) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// ApplyFilter applies the AND-ed criteria over a partition without mutating
// it. Date criteria bound the effective date inclusively; the exact-match
// criteria are skipped when set to FilterAll or left empty. An empty result
// is valid and returned as an empty, non-nil slice.
func ApplyFilter(records []*Record, criteria FilterCriteria) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if criteria.DateRangeStart != nil && r.EffectiveDate.Before(*criteria.DateRangeStart) {
			continue
		}
		if criteria.DateRangeEnd != nil && r.EffectiveDate.After(*criteria.DateRangeEnd) {
			continue
		}
		if !matchesCriterion(criteria.CommodityName, r.CommodityName) {
			continue
		}
		if !matchesCriterion(criteria.Grade, string(r.Grade)) {
			continue
		}
		if !matchesCriterion(criteria.SourceType, string(r.SourceType)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesCriterion(criterion, value string) bool {
	if criterion == "" || strings.EqualFold(criterion, FilterAll) {
		return true
	}
	return criterion == value
}

// timestampSortLayout is fixed-width so lexicographic order matches
// chronological order.
const timestampSortLayout = "2006-01-02T15:04:05.000000000"

// Sort returns a new slice ordered per the spec. The sort is stable: ties
// keep their relative order from the input. Total amount compares
// numerically, every other field compares case-insensitively as text.
func Sort(records []*Record, spec SortSpec) []*Record {
	out := make([]*Record, len(records))
	copy(out, records)

	less := lessFunc(spec.Field)
	if spec.Order == SortDescending {
		asc := less
		less = func(a, b *Record) bool { return asc(b, a) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(field SortField) func(a, b *Record) bool {
	if field == SortFieldTotalAmount {
		return func(a, b *Record) bool { return a.TotalAmount < b.TotalAmount }
	}

	key := textSortKey(field)
	return func(a, b *Record) bool { return key(a) < key(b) }
}

func textSortKey(field SortField) func(r *Record) string {
	switch field {
	case SortFieldStatus:
		return func(r *Record) string { return strings.ToLower(string(r.Status)) }
	case SortFieldID:
		return func(r *Record) string { return strings.ToLower(r.ID.String()) }
	default:
		return func(r *Record) string { return r.CreatedAt.UTC().Format(timestampSortLayout) }
	}
}

// Project is the full display pipeline: partition by kind, filter, sort.
func Project(records []*Record, kind shared.TransactionKind, criteria FilterCriteria, spec SortSpec) []*Record {
	return Sort(ApplyFilter(Partition(records, kind), criteria), spec)
}
