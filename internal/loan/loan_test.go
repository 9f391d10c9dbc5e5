package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDueDateFor(t *testing.T) {
	due := DueDateFor(date(2024, 1, 1))
	assert.Equal(t, date(2024, 1, 15), due)
}

func TestDueDateFor_TruncatesTimeOfDay(t *testing.T) {
	loanDt := time.Date(2024, 1, 1, 17, 45, 3, 0, time.UTC)
	assert.Equal(t, date(2024, 1, 15), DueDateFor(loanDt))
}

func TestDaysLate(t *testing.T) {
	tests := []struct {
		name    string
		dueDate time.Time
		today   time.Time
		want    int
	}{
		{"on due date", date(2024, 1, 15), date(2024, 1, 15), 0},
		{"before due date", date(2024, 1, 15), date(2024, 1, 10), -5},
		{"one day late", date(2024, 1, 15), date(2024, 1, 16), 1},
		{"five days late", date(2024, 1, 15), date(2024, 1, 20), 5},
		{"across month boundary", date(2024, 1, 31), date(2024, 2, 2), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysLate(tt.dueDate, tt.today))
		})
	}
}

func TestFineFor(t *testing.T) {
	tests := []struct {
		name    string
		dueDate time.Time
		today   time.Time
		want    float64
	}{
		{"not late", date(2024, 1, 15), date(2024, 1, 10), 0},
		{"on due date", date(2024, 1, 15), date(2024, 1, 15), 0},
		{"one day late", date(2024, 1, 15), date(2024, 1, 16), 500.00},
		{"five days late", date(2024, 1, 15), date(2024, 1, 20), 2500.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FineFor(tt.dueDate, tt.today))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "500.00", FormatAmount(500))
	assert.Equal(t, "2500.00", FormatAmount(2500))
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"ACTIVE", "RETURNED", "OVERDUE"} {
		got, err := ParseStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, Status(s), got)
	}

	_, err := ParseStatus("active")
	assert.Error(t, err)
	_, err = ParseStatus("LOST")
	assert.Error(t, err)
}
