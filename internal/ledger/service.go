// Package ledger coordinates the split-allocation engine with the entity
// store: it records expenses as reconciled sets of splits, applies split
// lifecycle commands, and aggregates splits into balances.
package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"settleup/internal/allocation"
	"settleup/internal/domain"
	"settleup/internal/repository"
)

// Service is the expense orchestrator. Every mutating operation runs inside
// one transaction against the backing store, so a failure mid-allocation
// leaves either no splits or a fully formed set.
type Service struct {
	db       *gorm.DB
	users    *repository.Users
	groups   *repository.Groups
	expenses *repository.Expenses
	splits   *repository.Splits
}

// NewService creates a ledger service on the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:       db,
		users:    repository.NewUsers(db),
		groups:   repository.NewGroups(db),
		expenses: repository.NewExpenses(db),
		splits:   repository.NewSplits(db),
	}
}

// RecordExpense validates the group and payer, allocates the amount across
// the participants with the chosen strategy, and persists the expense with
// its splits in one transaction. Splits start out PENDING.
//
// For EQUAL an empty participant list means the whole group membership.
// Every participant must be a member of the group at allocation time;
// membership changes afterwards do not re-validate existing splits.
func (s *Service) RecordExpense(groupID, paidByID uint, amount decimal.Decimal, description string,
	splitType domain.SplitType, details []allocation.Participant) (*domain.Expense, error) {

	group, err := s.groups.Get(groupID)
	if err != nil {
		return nil, translate(err, "group", groupID)
	}
	payer, err := s.users.Get(paidByID)
	if err != nil {
		return nil, translate(err, "user", paidByID)
	}

	// EQUAL with no explicit details splits across the whole group.
	if len(details) == 0 && splitType == domain.SplitTypeEqual {
		for _, m := range group.Members {
			details = append(details, allocation.Participant{UserID: m.ID})
		}
	}
	for _, p := range details {
		if !group.HasMember(p.UserID) {
			return nil, invalidf("user %d is not a member of group %d", p.UserID, groupID)
		}
	}

	shares, err := allocation.Allocate(amount, splitType, details)
	if err != nil {
		return nil, invalidf("allocate %s across %d participants: %v", amount, len(details), err)
	}

	expense := &domain.Expense{
		GroupID:     groupID,
		PaidByID:    paidByID,
		Amount:      amount.Round(2),
		Description: description,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Persist the shell first so the splits have an owner identity.
		if err := s.expenses.WithTx(tx).Save(expense); err != nil {
			return err
		}
		txSplits := s.splits.WithTx(tx)
		for _, share := range shares {
			split := &domain.Split{
				ExpenseID: expense.ID,
				UserID:    share.UserID,
				Amount:    share.Amount,
				SplitType: splitType,
				Status:    domain.SplitStatusPending,
			}
			if err := txSplits.Save(split); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"group_id":   groupID,
			"paid_by_id": paidByID,
			"amount":     amount,
			"split_type": splitType,
			"error":      err.Error(),
		}).Error("Record expense failed")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"expense_id": expense.ID,
		"group_id":   groupID,
		"paid_by":    payer.Email,
		"amount":     expense.Amount,
		"split_type": splitType,
		"splits":     len(shares),
	}).Info("Expense recorded")

	return s.expenses.Get(expense.ID)
}

// GetExpense returns an expense with its splits.
func (s *Service) GetExpense(id uint) (*domain.Expense, error) {
	expense, err := s.expenses.Get(id)
	if err != nil {
		return nil, translate(err, "expense", id)
	}
	return expense, nil
}

// ListExpenses returns all expenses.
func (s *Service) ListExpenses() ([]domain.Expense, error) {
	return s.expenses.List()
}

// DeleteExpense removes an expense and cascades to every split it owns.
func (s *Service) DeleteExpense(id uint) error {
	if _, err := s.expenses.Get(id); err != nil {
		return translate(err, "expense", id)
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.expenses.WithTx(tx).Delete(id)
	})
	if err != nil {
		return err
	}
	logrus.WithField("expense_id", id).Info("Expense deleted")
	return nil
}

// UpdateSplitStatus advances a split's lifecycle. Transitions are forward
// only (PENDING -> PAID -> SETTLED); same-status and backward moves are
// rejected with ErrInvalidArgument.
func (s *Service) UpdateSplitStatus(splitID uint, status domain.SplitStatus) (*domain.Split, error) {
	if !status.Valid() {
		return nil, invalidf("unknown split status %q", status)
	}
	split, err := s.splits.Get(splitID)
	if err != nil {
		return nil, translate(err, "split", splitID)
	}
	if !split.Status.CanTransitionTo(status) {
		return nil, invalidf("split %d: cannot move from %s to %s", splitID, split.Status, status)
	}
	split.Status = status
	if err := s.splits.Save(split); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"split_id": splitID,
		"status":   status,
	}).Info("Split status updated")
	return split, nil
}

// UpdateSplitAmount changes a split's amount. The new amount is rescaled to
// 2 places and must be positive. The parent expense's sum invariant is
// deliberately not re-checked here; keeping the splits reconciled after a
// manual amount change is the caller's responsibility.
func (s *Service) UpdateSplitAmount(splitID uint, amount decimal.Decimal) (*domain.Split, error) {
	if !amount.IsPositive() {
		return nil, invalidf("split amount must be positive, got %s", amount)
	}
	split, err := s.splits.Get(splitID)
	if err != nil {
		return nil, translate(err, "split", splitID)
	}
	split.Amount = amount.Round(2)
	if err := s.splits.Save(split); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"split_id": splitID,
		"amount":   split.Amount,
	}).Info("Split amount updated")
	return split, nil
}

// DeleteSplit removes a single split. The owning expense stays.
func (s *Service) DeleteSplit(splitID uint) error {
	if _, err := s.splits.Get(splitID); err != nil {
		return translate(err, "split", splitID)
	}
	if err := s.splits.Delete(splitID); err != nil {
		return err
	}
	logrus.WithField("split_id", splitID).Info("Split deleted")
	return nil
}

// GetSplit returns a split with its owning expense preloaded.
func (s *Service) GetSplit(id uint) (*domain.Split, error) {
	split, err := s.splits.Get(id)
	if err != nil {
		return nil, translate(err, "split", id)
	}
	return split, nil
}

// SplitsByUser returns all splits owed by the user.
func (s *Service) SplitsByUser(userID uint) ([]domain.Split, error) {
	if _, err := s.users.Get(userID); err != nil {
		return nil, translate(err, "user", userID)
	}
	return s.splits.ByUser(userID)
}

// SplitsByExpense returns all splits belonging to the expense.
func (s *Service) SplitsByExpense(expenseID uint) ([]domain.Split, error) {
	if _, err := s.expenses.Get(expenseID); err != nil {
		return nil, translate(err, "expense", expenseID)
	}
	return s.splits.ByExpense(expenseID)
}

// SplitByUserAndExpense returns the user's split within one expense.
func (s *Service) SplitByUserAndExpense(userID, expenseID uint) (*domain.Split, error) {
	if _, err := s.users.Get(userID); err != nil {
		return nil, translate(err, "user", userID)
	}
	if _, err := s.expenses.Get(expenseID); err != nil {
		return nil, translate(err, "expense", expenseID)
	}
	split, err := s.splits.ByUserAndExpense(userID, expenseID)
	if err != nil {
		return nil, translate(err, "split for user", userID)
	}
	return split, nil
}
