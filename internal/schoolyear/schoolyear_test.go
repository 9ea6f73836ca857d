package schoolyear

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{date(2025, time.July, 31), "2024-2025"},
		{date(2025, time.August, 1), "2025-2026"},
		{date(2025, time.December, 31), "2025-2026"},
		{date(2026, time.January, 1), "2025-2026"},
		{date(2026, time.May, 15), "2025-2026"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Current(tt.now), tt.now.String())
	}
}

func TestOptions(t *testing.T) {
	assert.Equal(t, []string{"2025-2026", "2024-2025"}, Options(date(2026, time.March, 2)))
}

func TestCalendarYear(t *testing.T) {
	tests := []struct {
		month int
		want  int
	}{
		{9, 2024}, {10, 2024}, {11, 2024}, {12, 2024},
		{1, 2025}, {2, 2025}, {3, 2025}, {4, 2025}, {5, 2025},
	}
	for _, tt := range tests {
		got, err := CalendarYear("2024-2025", tt.month)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "month %d", tt.month)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "2024", "2024-2026", "abcd-efgh", "2024-2025-2026"} {
		_, _, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestForNewForm_UsesCalendarYear(t *testing.T) {
	assert.Equal(t, "2026-2027", ForNewForm(date(2026, time.February, 10)))
	assert.Equal(t, "2025-2026", ForNewForm(date(2025, time.October, 10)))
}

func TestIsMonth(t *testing.T) {
	assert.True(t, IsMonth(9))
	assert.True(t, IsMonth(5))
	assert.False(t, IsMonth(6))
	assert.False(t, IsMonth(8))
	assert.Len(t, Months, 9)
}
