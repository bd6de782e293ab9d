package ttparser

import (
	"time"
)

// DateFormat is used for Entry.Date and in the database.
const DateFormat = "02.01.2006"

const daysPerWeek = 6

// Layout describes where sessions are placed on the sheet. Rows and
// columns are 0-based.
type Layout struct {
	// First row of every week block.
	WeekRows         []int `yaml:"week_rows"`
	TimeColumn       int   `yaml:"time_column"`
	SubjectColumns   []int `yaml:"subject_columns"`
	ClassroomColumns []int `yaml:"classroom_columns"`
	// Number of session rows after the first row of a block.
	SlotRows int `yaml:"slot_rows"`
	// Reuse week blocks round-robin when more weeks are requested than
	// there are blocks.
	Cycle bool `yaml:"cycle"`
}

func DefaultLayout() Layout {
	return Layout{
		WeekRows:         []int{1, 11, 21},
		TimeColumn:       1,
		SubjectColumns:   []int{2, 4, 6, 8, 10, 12},
		ClassroomColumns: []int{3, 5, 7, 9, 11, 13},
		SlotRows:         8,
	}
}

// Entry is a single session found in the grid.
type Entry struct {
	Label     string // subject cell as found in the sheet
	Subject   string
	Classroom string
	Time      string // HH.MM-HH.MM
	Date      string // DD.MM.YYYY
	Teacher   string
	Type      LessonType
	Presence  Presence
	Subgroup  int
}

// block returns first row of week block for 1-based week index.
func (l Layout) block(week int) (int, bool) {
	if week < 1 || len(l.WeekRows) == 0 {
		return 0, false
	}
	i := week - 1
	if l.Cycle {
		i %= len(l.WeekRows)
	}
	if i >= len(l.WeekRows) {
		return 0, false
	}
	return l.WeekRows[i], true
}

// Walk extracts sessions for the requested weeks. start is the first day
// of the first week. Entries carry the raw label as Subject and default
// attributes, see Refine.
func Walk(g Grid, l Layout, start time.Time, weeks []int) []Entry {
	days := daysPerWeek
	if len(l.SubjectColumns) < days {
		days = len(l.SubjectColumns)
	}
	if len(l.ClassroomColumns) < days {
		days = len(l.ClassroomColumns)
	}

	res := []Entry(nil)
	for _, week := range weeks {
		startRow, ok := l.block(week)
		if !ok || startRow >= g.Rows() {
			continue
		}
		weekStart := start.AddDate(0, 0, 7*(week-1))

		for day := 0; day < days; day++ {
			date := weekStart.AddDate(0, 0, day).Format(DateFormat)

			for row := startRow + 1; row <= startRow+l.SlotRows; row++ {
				if row >= g.Rows() {
					break
				}
				tm := g.Cell(row, l.TimeColumn)
				subject := g.Cell(row, l.SubjectColumns[day])
				if tm == "" || subject == "" {
					continue
				}
				res = append(res, Entry{
					Label:     subject,
					Subject:   subject,
					Classroom: g.Cell(row, l.ClassroomColumns[day]),
					Time:      tm,
					Date:      date,
				})
			}
		}
	}
	return res
}

// Refine returns copies of entries with suffix tokens moved from the
// subject into attributes.
func Refine(entries []Entry, s Suffixes) []Entry {
	res := make([]Entry, len(entries))
	for i, e := range entries {
		subj := ParseSubject(e.Label, s)
		e.Subject = subj.Name
		e.Type = subj.Type
		e.Presence = subj.Presence
		e.Subgroup = subj.Subgroup
		res[i] = e
	}
	return res
}
