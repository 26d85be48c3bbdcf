package ledger

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"settleup/internal/allocation"
	"settleup/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// newTestService opens a throwaway sqlite database with the full schema.
func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ledger.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Group{}, &domain.Expense{}, &domain.Split{}))
	return NewService(db)
}

// seedGroup creates n users and a group containing all of them. User IDs are
// returned in creation order.
func seedGroup(t *testing.T, s *Service, name string, n int) (*domain.Group, []domain.User) {
	t.Helper()
	users := make([]domain.User, n)
	for i := range users {
		users[i] = domain.User{
			Name:     name + "-member",
			Email:    name + string(rune('a'+i)) + "@example.com",
			Password: "x",
		}
		require.NoError(t, s.db.Create(&users[i]).Error)
	}
	group := &domain.Group{Name: name, Members: users}
	require.NoError(t, s.db.Create(group).Error)
	return group, users
}

func TestRecordExpenseEqualDefaultsToWholeGroup(t *testing.T) {
	s := newTestService(t)
	group, users := seedGroup(t, s, "roommates", 3)

	expense, err := s.RecordExpense(group.ID, users[0].ID, dec("100.00"), "Monthly Rent", domain.SplitTypeEqual, nil)
	require.NoError(t, err)
	require.Len(t, expense.Splits, 3)

	// Shares reconcile exactly to the expense amount.
	sum := decimal.Zero
	for _, split := range expense.Splits {
		assert.Equal(t, domain.SplitTypeEqual, split.SplitType)
		assert.Equal(t, domain.SplitStatusPending, split.Status)
		assert.False(t, split.CreatedAt.IsZero(), "created_at must be stamped on first persist")
		sum = sum.Add(split.Amount)
	}
	assert.True(t, dec("100.00").Equal(sum), "splits sum to %s", sum)
}

func TestRecordExpensePercentage(t *testing.T) {
	s := newTestService(t)
	group, users := seedGroup(t, s, "dinner", 3)

	details := []allocation.Participant{
		{UserID: users[0].ID, Percentage: dec("50")},
		{UserID: users[1].ID, Percentage: dec("30")},
		{UserID: users[2].ID, Percentage: dec("20")},
	}
	expense, err := s.RecordExpense(group.ID, users[0].ID, dec("120.00"), "Italian Restaurant", domain.SplitTypePercentage, details)
	require.NoError(t, err)
	require.Len(t, expense.Splits, 3)

	want := map[uint]string{users[0].ID: "60.00", users[1].ID: "36.00", users[2].ID: "24.00"}
	for _, split := range expense.Splits {
		assert.True(t, dec(want[split.UserID]).Equal(split.Amount),
			"user %d: want %s, got %s", split.UserID, want[split.UserID], split.Amount)
	}
}

func TestRecordExpenseCustom(t *testing.T) {
	s := newTestService(t)
	group, users := seedGroup(t, s, "trip", 2)

	details := []allocation.Participant{
		{UserID: users[0].ID, Amount: dec("70.00")},
		{UserID: users[1].ID, Amount: dec("30.00")},
	}
	expense, err := s.RecordExpense(group.ID, users[1].ID, dec("100.00"), "Hotel Booking", domain.SplitTypeCustom, details)
	require.NoError(t, err)
	require.Len(t, expense.Splits, 2)
	for _, split := range expense.Splits {
		assert.Equal(t, domain.SplitTypeCustom, split.SplitType)
	}
}

func TestRecordExpenseRejections(t *testing.T) {
	s := newTestService(t)
	group, users := seedGroup(t, s, "club", 2)
	outsider := domain.User{Name: "Outsider", Email: "outsider@example.com", Password: "x"}
	require.NoError(t, s.db.Create(&outsider).Error)

	t.Run("unknown group", func(t *testing.T) {
		_, err := s.RecordExpense(9999, users[0].ID, dec("10.00"), "x", domain.SplitTypeEqual, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("unknown payer", func(t *testing.T) {
		_, err := s.RecordExpense(group.ID, 9999, dec("10.00"), "x", domain.SplitTypeEqual, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("participant outside the group", func(t *testing.T) {
		details := []allocation.Participant{{UserID: outsider.ID, Amount: dec("10.00")}}
		_, err := s.RecordExpense(group.ID, users[0].ID, dec("10.00"), "x", domain.SplitTypeCustom, details)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
	t.Run("excluded strategy", func(t *testing.T) {
		details := []allocation.Participant{{UserID: users[0].ID}}
		_, err := s.RecordExpense(group.ID, users[0].ID, dec("10.00"), "x", domain.SplitTypeExcluded, details)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
	t.Run("nothing persisted after rejection", func(t *testing.T) {
		var count int64
		require.NoError(t, s.db.Model(&domain.Expense{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestUpdateSplitStatusForwardOnly(t *testing.T) {
	s := newTestService(t)
	group, users := seedGroup(t, s, "flat", 2)
	expense, err := s.RecordExpense(group.ID, users[0].ID, dec("50.00"), "Electricity", domain.SplitTypeEqual, nil)
	require.NoError(t, err)
	splitID := expense.Splits[0].ID

	// PENDING -> PAID -> SETTLED succeeds step by step.
	split, err := s.UpdateSplitStatus(splitID, domain.SplitStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.SplitStatusPaid, split.Status)

	split, err = s.UpdateSplitStatus(splitID, domain.SplitStatusSettled)
	require.NoError(t, err)
	assert.Equal(t, domain.SplitStatusSettled, split.Status)

	// Backward and same-status moves are rejected.
	_, err = s.UpdateSplitStatus(splitID, domain.SplitStatusPaid)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.UpdateSplitStatus(splitID, domain.SplitStatusSettled)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.UpdateSplitStatus(9999, domain.SplitStatusPaid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSplitAmount(t *testing.T) {
	s := newTestService(t)
	group, users := seedGroup(t, s, "pair", 2)
	expense, err := s.RecordExpense(group.ID, users[0].ID, dec("50.00"), "Groceries", domain.SplitTypeEqual, nil)
	require.NoError(t, err)
	splitID := expense.Splits[0].ID

	split, err := s.UpdateSplitAmount(splitID, dec("30.005"))
	require.NoError(t, err)
	assert.True(t, dec("30.01").Equal(split.Amount), "got %s", split.Amount)

	// The parent expense sum is deliberately not re-checked: the expense
	// amount is unchanged even though the splits no longer reconcile.
	reloaded, err := s.GetExpense(expense.ID)
	require.NoError(t, err)
	assert.True(t, dec("50.00").Equal(reloaded.Amount))

	_, err = s.UpdateSplitAmount(splitID, dec("0"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.UpdateSplitAmount(9999, dec("5.00"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteExpenseCascadesToSplits(t *testing.T) {
	s := newTestService(t)
	group, users := seedGroup(t, s, "house", 3)
	expense, err := s.RecordExpense(group.ID, users[0].ID, dec("90.00"), "Internet", domain.SplitTypeEqual, nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteExpense(expense.ID))

	_, err = s.GetExpense(expense.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	var count int64
	require.NoError(t, s.db.Model(&domain.Split{}).Where("expense_id = ?", expense.ID).Count(&count).Error)
	assert.Zero(t, count, "splits must be cascade-deleted with their expense")

	assert.ErrorIs(t, s.DeleteExpense(expense.ID), ErrNotFound)
}

func TestDeleteSplitKeepsExpense(t *testing.T) {
	s := newTestService(t)
	group, users := seedGroup(t, s, "duo", 2)
	expense, err := s.RecordExpense(group.ID, users[0].ID, dec("40.00"), "Taxi", domain.SplitTypeEqual, nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteSplit(expense.Splits[0].ID))

	reloaded, err := s.GetExpense(expense.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Splits, 1)

	assert.ErrorIs(t, s.DeleteSplit(9999), ErrNotFound)
}

func TestSplitLookups(t *testing.T) {
	s := newTestService(t)
	group, users := seedGroup(t, s, "lookup", 2)
	expense, err := s.RecordExpense(group.ID, users[0].ID, dec("20.00"), "Coffee", domain.SplitTypeEqual, nil)
	require.NoError(t, err)

	byUser, err := s.SplitsByUser(users[1].ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	byExpense, err := s.SplitsByExpense(expense.ID)
	require.NoError(t, err)
	assert.Len(t, byExpense, 2)

	split, err := s.SplitByUserAndExpense(users[1].ID, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, users[1].ID, split.UserID)

	_, err = s.SplitsByUser(9999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.SplitsByExpense(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
