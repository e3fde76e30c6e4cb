package service

import "time"

// AddBusinessDays advances t by n business days, skipping Saturdays and
// Sundays. Card acquirers settle debit at +1, credit at +2.
func AddBusinessDays(t time.Time, n int) time.Time {
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n--
		}
	}
	return t
}

// SplitInstallments divides a total in cents into n parts that sum back
// exactly; the remainder cents land on the first installment.
func SplitInstallments(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	base := total / int64(n)
	remainder := total - base*int64(n)

	parts := make([]int64, n)
	for i := range parts {
		parts[i] = base
	}
	parts[0] += remainder
	return parts
}
