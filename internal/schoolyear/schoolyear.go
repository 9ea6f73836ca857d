// Package schoolyear maps school years ("2024-2025") and school months to
// calendar years for report filters.
package schoolyear

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// A school year starts in August for labelling purposes; reporting months run
// September through May.
const startMonth = time.August

// Month is a selectable reporting month.
type Month struct {
	Value int
	Label string
}

// Months lists reporting months in school order.
var Months = []Month{
	{9, "Tháng 9"}, {10, "Tháng 10"}, {11, "Tháng 11"}, {12, "Tháng 12"},
	{1, "Tháng 1"}, {2, "Tháng 2"}, {3, "Tháng 3"}, {4, "Tháng 4"}, {5, "Tháng 5"},
}

// DefaultMonth is preselected on the statistics page.
const DefaultMonth = 9

// IsMonth reports whether m is a reporting month.
func IsMonth(m int) bool {
	for _, v := range Months {
		if v.Value == m {
			return true
		}
	}
	return false
}

// Format renders a school year label.
func Format(start int) string {
	return fmt.Sprintf("%d-%d", start, start+1)
}

// Current returns the school year containing now.
func Current(now time.Time) string {
	y := now.Year()
	if now.Month() >= startMonth {
		return Format(y)
	}
	return Format(y - 1)
}

// Options returns the current and previous school years.
func Options(now time.Time) []string {
	start, _, _ := Parse(Current(now))
	return []string{Format(start), Format(start - 1)}
}

// Parse splits "2024-2025" into its years.
func Parse(s string) (start, end int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid school year %q", s)
	}
	start, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid school year %q: %w", s, err)
	}
	end, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid school year %q: %w", s, err)
	}
	if end != start+1 {
		return 0, 0, fmt.Errorf("invalid school year %q: years must be consecutive", s)
	}
	return start, end, nil
}

// CalendarYear returns the calendar year a school month falls in:
// September-December belong to the first year, January onwards to the second.
func CalendarYear(schoolYear string, month int) (int, error) {
	start, end, err := Parse(schoolYear)
	if err != nil {
		return 0, err
	}
	if month >= 9 {
		return start, nil
	}
	return end, nil
}

// ForNewForm returns the school year stamped on newly created loan forms.
// It follows the calendar year of now, not Current.
func ForNewForm(now time.Time) string {
	return Format(now.Year())
}
