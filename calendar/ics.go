package calendar

import (
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const productID = "-//foxcpp//timetable_ics//RU"

// uidSpace keeps event UIDs stable between runs, so importing an updated
// file replaces events instead of duplicating them.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/foxcpp/timetable_ics"))

type WriteOptions struct {
	// DTSTAMP of all events, current time if zero.
	Stamp time.Time
}

func UID(ev Event) string {
	return uuid.NewSHA1(uidSpace, []byte(ev.UIDKey)).String()
}

// Write serializes events as a single VCALENDAR.
func Write(w io.Writer, events []Event, opts WriteOptions) error {
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, ev := range events {
		vev := cal.AddEvent(UID(ev))
		vev.SetDtStampTime(stamp)
		vev.SetStartAt(ev.Start)
		vev.SetEndAt(ev.End)
		vev.SetSummary(ev.Title)
		if ev.Location != "" {
			vev.SetLocation(ev.Location)
		}
		vev.SetDescription(ev.Description)
	}

	if err := cal.SerializeTo(w); err != nil {
		return errors.Wrap(err, "serialize calendar")
	}
	return nil
}
