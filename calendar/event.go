// Package calendar turns resolved sessions into iCalendar events.
package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/foxcpp/timetable_ics/ttparser"
	"github.com/pkg/errors"
	"github.com/slongfield/pyfmt"
)

var typeStr = map[ttparser.LessonType]string{
	ttparser.Lecture:           "Занятие",
	ttparser.Exam:              "Экзамен",
	ttparser.GradedPass:        "Дифференцированный зачёт",
	ttparser.Pass:              "Зачёт",
	ttparser.CourseworkDefense: "Защита курсовой работы",
}

const (
	titleFormat       = "{subject} ({teacher})"
	descriptionFormat = "{type}\n\nСобытие создано автоматически по таблице расписания и может содержать ошибки."
	onlineStr         = "онлайн"
	subgroupFormat    = "{num} подгруппа"
)

type Event struct {
	UIDKey      string
	Title       string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
}

// NewEvent formats session fields for serialization. offset is UTC
// offset of the timetable in hours.
func NewEvent(e ttparser.Entry, offset int) (Event, error) {
	start, end, err := ParseTimeRange(e.Time, e.Date, offset)
	if err != nil {
		return Event{}, err
	}

	title, err := pyfmt.Fmt(titleFormat, map[string]interface{}{
		"subject": e.Subject,
		"teacher": e.Teacher,
	})
	if err != nil {
		return Event{}, errors.Wrap(err, "title")
	}
	description, err := pyfmt.Fmt(descriptionFormat, map[string]interface{}{
		"type": typeStr[e.Type],
	})
	if err != nil {
		return Event{}, errors.Wrap(err, "description")
	}

	return Event{
		UIDKey:      strings.Join([]string{e.Date, e.Time, e.Subject, e.Classroom, strconv.Itoa(e.Subgroup)}, "|"),
		Title:       title,
		Location:    location(e),
		Description: description,
		Start:       start,
		End:         end,
	}, nil
}

func location(e ttparser.Entry) string {
	parts := []string(nil)
	if e.Classroom != "" {
		parts = append(parts, e.Classroom)
	}
	if e.Presence == ttparser.Online {
		parts = append(parts, onlineStr)
	}
	if e.Subgroup != 0 {
		parts = append(parts, pyfmt.Must(subgroupFormat, map[string]interface{}{
			"num": strconv.Itoa(e.Subgroup),
		}))
	}
	return strings.Join(parts, ", ")
}

// BuildEvents formats all entries. Entries with malformed time or date
// are skipped, errors for them are returned alongside.
func BuildEvents(entries []ttparser.Entry, offset int) ([]Event, []error) {
	res := make([]Event, 0, len(entries))
	skipped := []error(nil)
	for _, e := range entries {
		ev, err := NewEvent(e, offset)
		if err != nil {
			skipped = append(skipped, errors.Wrapf(err, "%s %s", e.Date, e.Label))
			continue
		}
		res = append(res, ev)
	}
	return res, skipped
}
