package fees

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library-service/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTotal(t *testing.T) {
	catalog := []models.Batch{
		{Time: "6-10AM", Price: 250},
		{Time: "10-2PM", Price: 300},
	}

	tests := []struct {
		name     string
		selected []string
		want     int64
	}{
		{"both batches", []string{"6-10AM", "10-2PM"}, 550},
		{"single batch", []string{"10-2PM"}, 300},
		{"empty selection", []string{}, 0},
		{"unknown label contributes zero", []string{"6-10AM", "Night Shift"}, 250},
		{"order independent", []string{"10-2PM", "6-10AM"}, 550},
		{"duplicate label counts once", []string{"6-10AM", "6-10AM"}, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Total(tt.selected, catalog))
		})
	}
}

func TestTotal_EmptyCatalog(t *testing.T) {
	assert.Equal(t, int64(0), Total([]string{"6-10AM"}, nil))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name        string
		paid, total int64
		want        models.PaymentStatus
	}{
		{"zero paid zero total", 0, 0, models.StatusUnpaid},
		{"partial", 50, 100, models.StatusPartial},
		{"exactly paid", 100, 100, models.StatusPaid},
		{"over-paid clamps to Paid", 150, 100, models.StatusPaid},
		{"paid against zero total", 50, 0, models.StatusUnpaid},
		{"negative paid reads as zero", -10, 100, models.StatusUnpaid},
		{"negative total reads as zero", 10, -100, models.StatusUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.paid, tt.total))
		})
	}
}

func TestNextMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"plain mid-month", date(2024, time.January, 15), date(2024, time.February, 15)},
		{"clamped to leap February", date(2024, time.January, 31), date(2024, time.February, 29)},
		{"clamped to non-leap February", date(2023, time.January, 31), date(2023, time.February, 28)},
		{"31st into 30-day month", date(2024, time.March, 31), date(2024, time.April, 30)},
		{"december rolls over the year", date(2024, time.December, 15), date(2025, time.January, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextMonth(tt.in))
		})
	}
}

func TestValidityWindow_FillsEmptyBounds(t *testing.T) {
	today := date(2024, time.January, 15)

	from, to := ValidityWindow(nil, nil, models.StatusPaid, today)
	assert.NotNil(t, from)
	assert.NotNil(t, to)
	assert.Equal(t, date(2024, time.January, 15), *from)
	assert.Equal(t, date(2024, time.February, 15), *to)
}

func TestValidityWindow_KeepsSetFrom(t *testing.T) {
	today := date(2024, time.March, 1)
	existing := date(2024, time.January, 31)

	from, to := ValidityWindow(&existing, nil, models.StatusPaid, today)
	assert.Equal(t, existing, *from)
	// "to" derives from the set "from", not from today; leap clamp.
	assert.Equal(t, date(2024, time.February, 29), *to)
}

func TestValidityWindow_NeverOverwrites(t *testing.T) {
	today := date(2024, time.June, 1)
	f := date(2024, time.January, 1)
	to := date(2024, time.February, 1)

	gotFrom, gotTo := ValidityWindow(&f, &to, models.StatusPaid, today)
	assert.Equal(t, f, *gotFrom)
	assert.Equal(t, to, *gotTo)
}

func TestValidityWindow_NoopUnlessPaid(t *testing.T) {
	today := date(2024, time.January, 15)

	from, to := ValidityWindow(nil, nil, models.StatusPartial, today)
	assert.Nil(t, from)
	assert.Nil(t, to)

	from, to = ValidityWindow(nil, nil, models.StatusUnpaid, today)
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestRecomputeTo(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 29), RecomputeTo(date(2024, time.January, 31)))
	assert.Equal(t, date(2024, time.March, 10), RecomputeTo(date(2024, time.February, 10)))
}
