package pricing

import "github.com/agrifed-procurement-ledger/internal/domain/shared"

// KgPerQuintal is the fixed conversion factor between the two trade units.
const KgPerQuintal = 100

// GradeMultiplier returns the fixed payout multiplier for a quality grade.
// Anything outside the payable grades yields 0: grade D produce is unpaid
// and an unrecognized value must never price above zero.
func GradeMultiplier(grade shared.Grade) float64 {
	switch grade {
	case shared.GradeA:
		return 1.0
	case shared.GradeB:
		return 0.8
	case shared.GradeC:
		return 0.6
	default:
		return 0
	}
}

// UnitPrice derives the per-unit price from the published base price per kg,
// the quality grade and the trade unit. Pure function of its inputs.
//
// A zero base price flows through unchanged; callers looking at a zero
// result cannot distinguish "free" from "commodity has no published price"
// and must resolve that at the lookup layer.
func UnitPrice(basePricePerKg float64, grade shared.Grade, unit shared.Unit) float64 {
	price := basePricePerKg * GradeMultiplier(grade)
	if unit == shared.UnitQuintal {
		price *= KgPerQuintal
	}
	return price
}
