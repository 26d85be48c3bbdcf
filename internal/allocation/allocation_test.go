package allocation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settleup/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func participants(ids ...uint) []Participant {
	ps := make([]Participant, len(ids))
	for i, id := range ids {
		ps[i] = Participant{UserID: id}
	}
	return ps
}

func TestAllocateEqual(t *testing.T) {
	tests := []struct {
		name  string
		total string
		ids   []uint
		want  map[uint]string
	}{
		{
			name:  "divides evenly",
			total: "120.00",
			ids:   []uint{1, 2, 3},
			want:  map[uint]string{1: "40.00", 2: "40.00", 3: "40.00"},
		},
		{
			name:  "residual lands on lowest user id",
			total: "100.00",
			ids:   []uint{3, 1, 2},
			// 100.00/3 rounds half-up to 33.33; the missing cent goes to user 1.
			want: map[uint]string{1: "33.34", 2: "33.33", 3: "33.33"},
		},
		{
			name:  "negative residual when base rounds up",
			total: "100.00",
			ids:   []uint{1, 2, 3, 4, 5, 6},
			// 100.00/6 = 16.666... rounds half-up to 16.67, sum 100.02;
			// user 1 absorbs the -0.02 residual.
			want: map[uint]string{1: "16.65", 2: "16.67", 3: "16.67", 4: "16.67", 5: "16.67", 6: "16.67"},
		},
		{
			name:  "single participant takes the whole amount",
			total: "59.99",
			ids:   []uint{7},
			want:  map[uint]string{7: "59.99"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Allocate(dec(tt.total), domain.SplitTypeEqual, participants(tt.ids...))
			require.NoError(t, err)
			require.Len(t, shares, len(tt.ids))
			for _, s := range shares {
				assert.True(t, dec(tt.want[s.UserID]).Equal(s.Amount),
					"user %d: want %s, got %s", s.UserID, tt.want[s.UserID], s.Amount)
			}
			assert.True(t, dec(tt.total).Equal(Sum(shares)),
				"shares must reconcile to the total, got %s", Sum(shares))
		})
	}
}

func TestAllocateEqualAlwaysReconciles(t *testing.T) {
	// Awkward totals across several participant counts: the residual
	// assignment must restore the exact sum every time.
	totals := []string{"1.00", "10.01", "99.99", "100.00", "333.33", "1500.00"}
	for n := 1; n <= 9; n++ {
		ids := make([]uint, n)
		for i := range ids {
			ids[i] = uint(i + 1)
		}
		for _, total := range totals {
			shares, err := Allocate(dec(total), domain.SplitTypeEqual, participants(ids...))
			require.NoError(t, err, "total=%s n=%d", total, n)
			assert.True(t, dec(total).Equal(Sum(shares)), "total=%s n=%d sum=%s", total, n, Sum(shares))
		}
	}
}

func TestAllocateEqualOutputSortedByUserID(t *testing.T) {
	shares, err := Allocate(dec("90.00"), domain.SplitTypeEqual, participants(9, 4, 7))
	require.NoError(t, err)
	require.Len(t, shares, 3)
	assert.Equal(t, uint(4), shares[0].UserID)
	assert.Equal(t, uint(7), shares[1].UserID)
	assert.Equal(t, uint(9), shares[2].UserID)
}

func TestAllocatePercentage(t *testing.T) {
	ps := []Participant{
		{UserID: 1, Percentage: dec("50")},
		{UserID: 2, Percentage: dec("30")},
		{UserID: 3, Percentage: dec("20")},
	}
	shares, err := Allocate(dec("120.00"), domain.SplitTypePercentage, ps)
	require.NoError(t, err)

	want := map[uint]string{1: "60.00", 2: "36.00", 3: "24.00"}
	for _, s := range shares {
		assert.True(t, dec(want[s.UserID]).Equal(s.Amount), "user %d: got %s", s.UserID, s.Amount)
	}
	assert.True(t, dec("120.00").Equal(Sum(shares)))
}

func TestAllocatePercentageRoundsHalfUp(t *testing.T) {
	ps := []Participant{{UserID: 1, Percentage: dec("33.335")}}
	shares, err := Allocate(dec("100.00"), domain.SplitTypePercentage, ps)
	require.NoError(t, err)
	// 100.00 * 33.335 / 100 = 33.335 -> 33.34
	assert.True(t, dec("33.34").Equal(shares[0].Amount), "got %s", shares[0].Amount)
}

func TestAllocatePercentageDoesNotValidateSum(t *testing.T) {
	// Percentages summing to 90 are accepted; the shortfall is the
	// caller's problem, not the engine's.
	ps := []Participant{
		{UserID: 1, Percentage: dec("60")},
		{UserID: 2, Percentage: dec("30")},
	}
	shares, err := Allocate(dec("100.00"), domain.SplitTypePercentage, ps)
	require.NoError(t, err)
	assert.True(t, dec("90.00").Equal(Sum(shares)))
}

func TestAllocateCustom(t *testing.T) {
	ps := []Participant{
		{UserID: 1, Amount: dec("12.345")},
		{UserID: 2, Amount: dec("7.654")},
	}
	shares, err := Allocate(dec("100.00"), domain.SplitTypeCustom, ps)
	require.NoError(t, err)

	// Amounts are rescaled half-up to 2 places and never redistributed,
	// even though they are nowhere near the total.
	want := map[uint]string{1: "12.35", 2: "7.65"}
	for _, s := range shares {
		assert.True(t, dec(want[s.UserID]).Equal(s.Amount), "user %d: got %s", s.UserID, s.Amount)
	}
}

func TestAllocateErrors(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		splitType domain.SplitType
		ps        []Participant
	}{
		{"zero total", "0.00", domain.SplitTypeEqual, participants(1)},
		{"negative total", "-5.00", domain.SplitTypeEqual, participants(1)},
		{"no participants", "10.00", domain.SplitTypeEqual, nil},
		{"excluded is reserved", "10.00", domain.SplitTypeExcluded, participants(1)},
		{"unknown type", "10.00", domain.SplitType("HALFSIES"), participants(1)},
		{"zero percentage share", "10.00", domain.SplitTypePercentage, []Participant{{UserID: 1, Percentage: dec("0")}}},
		{"zero custom share", "10.00", domain.SplitTypeCustom, []Participant{{UserID: 1, Amount: dec("0")}}},
		{"negative custom share", "10.00", domain.SplitTypeCustom, []Participant{{UserID: 1, Amount: dec("-1.00")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Allocate(dec(tt.total), tt.splitType, tt.ps)
			assert.Error(t, err)
		})
	}
}
