package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settleup/internal/allocation"
	"settleup/internal/domain"
)

func TestBalanceInGroup(t *testing.T) {
	s := newTestService(t)
	group, users := seedGroup(t, s, "balance", 2)
	alice, bob := users[0], users[1]

	// Alice owes 50.00 (PENDING) and has paid 20.00 (PAID) in this group.
	_, err := s.RecordExpense(group.ID, bob.ID, dec("100.00"), "Hotel", domain.SplitTypeCustom,
		[]allocation.Participant{
			{UserID: alice.ID, Amount: dec("50.00")},
			{UserID: bob.ID, Amount: dec("50.00")},
		})
	require.NoError(t, err)
	e2, err := s.RecordExpense(group.ID, bob.ID, dec("40.00"), "Dinner", domain.SplitTypeCustom,
		[]allocation.Participant{
			{UserID: alice.ID, Amount: dec("20.00")},
			{UserID: bob.ID, Amount: dec("20.00")},
		})
	require.NoError(t, err)

	aliceDinner, err := s.SplitByUserAndExpense(alice.ID, e2.ID)
	require.NoError(t, err)
	_, err = s.UpdateSplitStatus(aliceDinner.ID, domain.SplitStatusPaid)
	require.NoError(t, err)

	balance, err := s.BalanceInGroup(alice.ID, group.ID)
	require.NoError(t, err)
	assert.True(t, dec("30.00").Equal(balance), "pending 50 minus paid 20, got %s", balance)

	// Settling the paid split removes it from both sides of the sum.
	_, err = s.UpdateSplitStatus(aliceDinner.ID, domain.SplitStatusSettled)
	require.NoError(t, err)
	balance, err = s.BalanceInGroup(alice.ID, group.ID)
	require.NoError(t, err)
	assert.True(t, dec("50.00").Equal(balance), "settled split must count on neither side, got %s", balance)

	// Bob's own shares are still pending: 50.00 + 20.00.
	balance, err = s.BalanceInGroup(bob.ID, group.ID)
	require.NoError(t, err)
	assert.True(t, dec("70.00").Equal(balance), "got %s", balance)

	_, err = s.BalanceInGroup(9999, group.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.BalanceInGroup(alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTotalOwedIgnoresPaid(t *testing.T) {
	s := newTestService(t)
	groupA, usersA := seedGroup(t, s, "totala", 2)
	alice := usersA[0]

	// Second group containing the same user.
	groupB := &domain.Group{Name: "totalb", Members: []domain.User{alice, usersA[1]}}
	require.NoError(t, s.db.Create(groupB).Error)

	// 10.00 pending in group A, 15.00 pending in group B, 5.00 paid.
	_, err := s.RecordExpense(groupA.ID, usersA[1].ID, dec("20.00"), "A", domain.SplitTypeCustom,
		[]allocation.Participant{
			{UserID: alice.ID, Amount: dec("10.00")},
			{UserID: usersA[1].ID, Amount: dec("10.00")},
		})
	require.NoError(t, err)
	_, err = s.RecordExpense(groupB.ID, usersA[1].ID, dec("30.00"), "B", domain.SplitTypeCustom,
		[]allocation.Participant{
			{UserID: alice.ID, Amount: dec("15.00")},
			{UserID: usersA[1].ID, Amount: dec("15.00")},
		})
	require.NoError(t, err)
	paidExpense, err := s.RecordExpense(groupA.ID, usersA[1].ID, dec("10.00"), "paid one", domain.SplitTypeCustom,
		[]allocation.Participant{
			{UserID: alice.ID, Amount: dec("5.00")},
			{UserID: usersA[1].ID, Amount: dec("5.00")},
		})
	require.NoError(t, err)
	alicePaid, err := s.SplitByUserAndExpense(alice.ID, paidExpense.ID)
	require.NoError(t, err)
	_, err = s.UpdateSplitStatus(alicePaid.ID, domain.SplitStatusPaid)
	require.NoError(t, err)

	// The PAID 5.00 is excluded, not subtracted: 10 + 15 = 25.
	total, err := s.TotalOwed(alice.ID)
	require.NoError(t, err)
	assert.True(t, dec("25.00").Equal(total), "got %s", total)

	_, err = s.TotalOwed(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPendingSplits(t *testing.T) {
	s := newTestService(t)
	group, users := seedGroup(t, s, "pending", 3)

	expense, err := s.RecordExpense(group.ID, users[0].ID, dec("90.00"), "Rent", domain.SplitTypeEqual, nil)
	require.NoError(t, err)

	// Mark one split paid; it must drop out of the pending list.
	_, err = s.UpdateSplitStatus(expense.Splits[0].ID, domain.SplitStatusPaid)
	require.NoError(t, err)

	pending, err := s.PendingSplits(group.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	for _, split := range pending {
		assert.Equal(t, domain.SplitStatusPending, split.Status)
	}

	_, err = s.PendingSplits(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
