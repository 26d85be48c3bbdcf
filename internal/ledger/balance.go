package ledger

import (
	"github.com/shopspring/decimal"

	"settleup/internal/domain"
)

// BalanceInGroup nets the user's splits within one group: the sum of PENDING
// amounts minus the sum of PAID amounts. SETTLED splits count on neither
// side. Positive means the user owes the group net.
func (s *Service) BalanceInGroup(userID, groupID uint) (decimal.Decimal, error) {
	if _, err := s.users.Get(userID); err != nil {
		return decimal.Zero, translate(err, "user", userID)
	}
	if _, err := s.groups.Get(groupID); err != nil {
		return decimal.Zero, translate(err, "group", groupID)
	}

	owed, err := s.splits.SumByUserGroupStatus(userID, groupID, domain.SplitStatusPending)
	if err != nil {
		return decimal.Zero, err
	}
	paid, err := s.splits.SumByUserGroupStatus(userID, groupID, domain.SplitStatusPaid)
	if err != nil {
		return decimal.Zero, err
	}
	return owed.Sub(paid), nil
}

// TotalOwed sums the user's PENDING splits across all groups. PAID splits
// are ignored entirely, not subtracted, so this is not symmetric with
// BalanceInGroup.
func (s *Service) TotalOwed(userID uint) (decimal.Decimal, error) {
	if _, err := s.users.Get(userID); err != nil {
		return decimal.Zero, translate(err, "user", userID)
	}
	pending, err := s.splits.ByUserAndStatus(userID, domain.SplitStatusPending)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, split := range pending {
		total = total.Add(split.Amount)
	}
	return total, nil
}

// PendingSplits returns every PENDING split in the group, in stable storage
// order.
func (s *Service) PendingSplits(groupID uint) ([]domain.Split, error) {
	if _, err := s.groups.Get(groupID); err != nil {
		return nil, translate(err, "group", groupID)
	}
	return s.splits.PendingByGroup(groupID)
}
