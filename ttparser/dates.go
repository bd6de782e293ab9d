package ttparser

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidFormat = errors.New("invalid format")

// ParseAcademicYear parses "2024-2025".
func ParseAcademicYear(academicYear string) (first, second int, err error) {
	parts := strings.Split(strings.TrimSpace(academicYear), "-")
	if len(parts) != 2 {
		return 0, 0, errors.Wrapf(ErrInvalidFormat, "academic year %q", academicYear)
	}
	first, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidFormat, "academic year %q", academicYear)
	}
	second, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidFormat, "academic year %q", academicYear)
	}
	return first, second, nil
}

// YearForMonth maps a month to calendar year: September to December
// belong to the first year of academic year, the rest to the second one.
func YearForMonth(month int, academicYear string) (int, error) {
	first, second, err := ParseAcademicYear(academicYear)
	if err != nil {
		return 0, err
	}
	if month >= 9 && month <= 12 {
		return first, nil
	}
	return second, nil
}

// StartDate parses "DD.MM" of the first week in academic year.
func StartDate(academicYear, dayMonth string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(dayMonth), ".")
	if len(parts) != 2 {
		return time.Time{}, errors.Wrapf(ErrInvalidFormat, "start date %q", dayMonth)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidFormat, "start date %q", dayMonth)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, errors.Wrapf(ErrInvalidFormat, "start date %q", dayMonth)
	}
	year, err := YearForMonth(month, academicYear)
	if err != nil {
		return time.Time{}, err
	}

	res := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if res.Day() != day {
		return time.Time{}, errors.Wrapf(ErrInvalidFormat, "start date %q", dayMonth)
	}
	return res, nil
}

// Weeks parses comma-separated list of 1-based week numbers. Empty list
// selects all weeks, numbers outside of 1..total are dropped.
func Weeks(total int, subset string) ([]int, error) {
	subset = strings.TrimSpace(subset)
	if subset == "" {
		res := make([]int, total)
		for i := range res {
			res[i] = i + 1
		}
		return res, nil
	}

	res := []int(nil)
	for _, part := range strings.Split(subset, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidFormat, "week %q", part)
		}
		if n < 1 || n > total {
			continue
		}
		res = append(res, n)
	}
	return res, nil
}
