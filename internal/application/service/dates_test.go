package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddBusinessDaysSkipsWeekend(t *testing.T) {
	t.Parallel()

	// Friday 2026-01-02
	friday := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	// +1 business day lands on Monday
	require.Equal(t, time.Monday, AddBusinessDays(friday, 1).Weekday())
	require.Equal(t, 5, AddBusinessDays(friday, 1).Day())

	// +2 business days lands on Tuesday
	require.Equal(t, time.Tuesday, AddBusinessDays(friday, 2).Weekday())
}

func TestAddBusinessDaysMidweek(t *testing.T) {
	t.Parallel()

	// Tuesday 2026-01-06
	tuesday := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Wednesday, AddBusinessDays(tuesday, 1).Weekday())
	require.Equal(t, time.Thursday, AddBusinessDays(tuesday, 2).Weekday())
}

func TestSplitInstallmentsExactDivision(t *testing.T) {
	t.Parallel()

	parts := SplitInstallments(30000, 3)
	require.Equal(t, []int64{10000, 10000, 10000}, parts)
}

func TestSplitInstallmentsRemainderOnFirst(t *testing.T) {
	t.Parallel()

	parts := SplitInstallments(10000, 3)
	require.Equal(t, []int64{3334, 3333, 3333}, parts)

	var sum int64
	for _, p := range parts {
		sum += p
	}
	require.Equal(t, int64(10000), sum)
}

func TestSplitInstallmentsSingle(t *testing.T) {
	t.Parallel()

	require.Equal(t, []int64{9999}, SplitInstallments(9999, 1))
	require.Nil(t, SplitInstallments(100, 0))
}
