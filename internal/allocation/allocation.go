// Package allocation computes per-user shares for an expense amount.
//
// All arithmetic is decimal with round-half-up at 2 places; binary floating
// point is never used for money. The engine is pure: it reads nothing and
// persists nothing.
package allocation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"settleup/internal/domain"
)

// Participant is one user taking part in an allocation. Amount is read for
// CUSTOM, Percentage for PERCENTAGE; EQUAL ignores both.
type Participant struct {
	UserID     uint
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

// Share is one computed obligation: what a single user owes of the total.
type Share struct {
	UserID uint
	Amount decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Allocate derives one share per participant from the total amount using the
// given strategy.
//
// EQUAL reconciles the rounding residual: the base share is the total divided
// by the participant count, rounded half-up to 2 places, and the leftover
// cents (total - base*count) are added to the participant with the lowest
// user ID so the shares always sum to the total exactly. Participants are
// sorted by user ID, which also fixes the output order.
//
// PERCENTAGE and CUSTOM do not cross-check their inputs: percentages that do
// not sum to 100, or custom amounts that do not sum to the total, produce
// shares that do not reconcile. That is the caller's responsibility.
//
// Every computed share must come out positive; a zero or negative share is
// reported as an error, never clamped.
func Allocate(total decimal.Decimal, splitType domain.SplitType, participants []Participant) ([]Share, error) {
	if !total.IsPositive() {
		return nil, fmt.Errorf("total amount must be positive, got %s", total)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("at least one participant is required")
	}

	total = total.Round(2)

	// Impose a total order so residual assignment and output order never
	// depend on map or set iteration.
	sorted := make([]Participant, len(participants))
	copy(sorted, participants)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].UserID < sorted[j].UserID })

	var shares []Share
	switch splitType {
	case domain.SplitTypeEqual:
		shares = allocateEqual(total, sorted)
	case domain.SplitTypePercentage:
		shares = allocatePercentage(total, sorted)
	case domain.SplitTypeCustom:
		shares = allocateCustom(sorted)
	case domain.SplitTypeExcluded:
		return nil, fmt.Errorf("split type %s is a reserved tag, no allocation strategy produces it", splitType)
	default:
		return nil, fmt.Errorf("unsupported split type %q", splitType)
	}

	for _, s := range shares {
		if !s.Amount.IsPositive() {
			return nil, fmt.Errorf("computed share for user %d is %s, shares must be positive", s.UserID, s.Amount)
		}
	}
	return shares, nil
}

// allocateEqual gives every participant the rounded base share and assigns
// the rounding residual to the first participant in user-ID order.
func allocateEqual(total decimal.Decimal, participants []Participant) []Share {
	count := decimal.NewFromInt(int64(len(participants)))
	base := total.DivRound(count, 2)
	residual := total.Sub(base.Mul(count))

	shares := make([]Share, len(participants))
	for i, p := range participants {
		amount := base
		if i == 0 {
			amount = amount.Add(residual)
		}
		shares[i] = Share{UserID: p.UserID, Amount: amount}
	}
	return shares
}

// allocatePercentage computes total * percentage / 100 per participant,
// rounded half-up to 2 places.
func allocatePercentage(total decimal.Decimal, participants []Participant) []Share {
	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{
			UserID: p.UserID,
			Amount: total.Mul(p.Percentage).DivRound(hundred, 2),
		}
	}
	return shares
}

// allocateCustom rescales the caller-supplied amounts to 2 places. No
// redistribution happens even when the amounts do not sum to the total.
func allocateCustom(participants []Participant) []Share {
	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{UserID: p.UserID, Amount: p.Amount.Round(2)}
	}
	return shares
}

// Sum adds up the share amounts. Used by callers asserting reconciliation.
func Sum(shares []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}
