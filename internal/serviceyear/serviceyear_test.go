package serviceyear

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOf(t *testing.T) {
	cases := []struct {
		in   time.Time
		want int
	}{
		{date(2024, time.September, 1), 2025},
		{date(2024, time.December, 31), 2025},
		{date(2025, time.January, 1), 2025},
		{date(2025, time.August, 31), 2025},
		{date(2025, time.September, 1), 2026},
	}
	for _, tc := range cases {
		if got := Of(tc.in); got != tc.want {
			t.Fatalf("Of(%s): expected %d, got %d", tc.in.Format("2006-01-02"), tc.want, got)
		}
		// Pure: calling twice must not differ.
		if Of(tc.in) != Of(tc.in) {
			t.Fatalf("Of is not deterministic for %s", tc.in)
		}
	}
}

func TestMonthSlotBijection(t *testing.T) {
	// Across a 12-month window starting September the slots must cover
	// 1..12 exactly once, in order.
	start := date(2024, time.September, 1)
	seen := make(map[int]bool)
	for i := 0; i < 12; i++ {
		m := start.AddDate(0, i, 0)
		slot := MonthSlot(m)
		if slot != i+1 {
			t.Fatalf("month %s: expected slot %d, got %d", m.Month(), i+1, slot)
		}
		if seen[slot] {
			t.Fatalf("slot %d produced twice", slot)
		}
		seen[slot] = true
	}
	if len(seen) != 12 {
		t.Fatalf("expected 12 distinct slots, got %d", len(seen))
	}
}

func TestMonthAtInvertsMonthSlot(t *testing.T) {
	for slot := 1; slot <= 12; slot++ {
		m := MonthAt(2025, slot)
		if MonthSlot(m) != slot {
			t.Fatalf("slot %d: MonthAt gave %s which maps back to %d", slot, m, MonthSlot(m))
		}
		if Of(m) != 2025 {
			t.Fatalf("slot %d: MonthAt(2025) landed in service year %d", slot, Of(m))
		}
	}
}

func TestBounds(t *testing.T) {
	start, end := Bounds(2025)
	if !start.Equal(date(2024, time.September, 1)) {
		t.Fatalf("unexpected start %s", start)
	}
	if !end.Equal(date(2025, time.September, 1)) {
		t.Fatalf("unexpected end %s", end)
	}
	// Every month inside the bounds belongs to the year, the end does not.
	if Of(start) != 2025 || Of(end.AddDate(0, 0, -1)) != 2025 {
		t.Fatalf("bounds do not cover service year 2025")
	}
	if Of(end) == 2025 {
		t.Fatalf("end must be exclusive")
	}
}

func TestFirstOfMonth(t *testing.T) {
	loc := time.FixedZone("X", -3*3600)
	in := time.Date(2025, time.March, 17, 22, 15, 0, 0, loc)
	got := FirstOfMonth(in)
	if !got.Equal(date(2025, time.March, 1)) {
		t.Fatalf("expected 2025-03-01 UTC, got %s", got)
	}
}
