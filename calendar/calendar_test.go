package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/foxcpp/timetable_ics/ttparser"
)

func TestParseTimeRange(t *testing.T) {
	start, end, err := ParseTimeRange(" 09.00 - 10.30 ", "02.09.2024", 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := start.Format(time.RFC3339); got != "2024-09-02T09:00:00+04:00" {
		t.Errorf("start = %s", got)
	}
	if got := end.Format(time.RFC3339); got != "2024-09-02T10:30:00+04:00" {
		t.Errorf("end = %s", got)
	}
}

func TestParseTimeRangeErrors(t *testing.T) {
	cases := []struct{ timeRange, date string }{
		{"09.00", "02.09.2024"},
		{"09.00-", "02.09.2024"},
		{"-10.30", "02.09.2024"},
		{"09.00-10.30-12.00", "02.09.2024"},
		{"утро-вечер", "02.09.2024"},
		{"09.00-10.30", "2024-09-02"},
	}
	for _, c := range cases {
		_, _, err := ParseTimeRange(c.timeRange, c.date, 4)
		if _, ok := err.(*FormatError); !ok {
			t.Errorf("ParseTimeRange(%q, %q): expected *FormatError, got %v", c.timeRange, c.date, err)
		}
	}
}

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent(ttparser.Entry{
		Label:     "Матем_экз_ОНЛАЙН_1 подгруппа",
		Subject:   "Матем",
		Classroom: "101",
		Time:      "09.00-10.30",
		Date:      "02.09.2024",
		Teacher:   "Иванов И.И.",
		Type:      ttparser.Exam,
		Presence:  ttparser.Online,
		Subgroup:  1,
	}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Title != "Матем (Иванов И.И.)" {
		t.Errorf("Title = %q", ev.Title)
	}
	if ev.Location != "101, онлайн, 1 подгруппа" {
		t.Errorf("Location = %q", ev.Location)
	}
	if !strings.HasPrefix(ev.Description, "Экзамен\n") || !strings.Contains(ev.Description, "может содержать ошибки") {
		t.Errorf("Description = %q", ev.Description)
	}
}

func TestLocationParts(t *testing.T) {
	cases := []struct {
		entry ttparser.Entry
		want  string
	}{
		{ttparser.Entry{}, ""},
		{ttparser.Entry{Classroom: "101"}, "101"},
		{ttparser.Entry{Presence: ttparser.Online}, "онлайн"},
		{ttparser.Entry{Subgroup: 2}, "2 подгруппа"},
	}
	for _, c := range cases {
		if got := location(c.entry); got != c.want {
			t.Errorf("location(%+v) = %q, want %q", c.entry, got, c.want)
		}
	}
}

func TestBuildEventsSkipsMalformed(t *testing.T) {
	entries := []ttparser.Entry{
		{Subject: "Матем", Teacher: "NA", Time: "09.00-10.30", Date: "02.09.2024"},
		{Subject: "Физика", Teacher: "NA", Time: "по согласованию", Date: "02.09.2024"},
		{Subject: "Химия", Teacher: "NA", Time: "12.00-13.30", Date: "03.09.2024"},
	}
	events, skipped := BuildEvents(entries, 4)
	if len(events) != 2 || len(skipped) != 1 {
		t.Fatalf("events %d, skipped %d", len(events), len(skipped))
	}
	if events[1].Title != "Химия (NA)" {
		t.Errorf("Title = %q", events[1].Title)
	}
}

// Sheet cell to calendar timestamps.
func TestFromGrid(t *testing.T) {
	g := make(ttparser.Grid, 10)
	for i := range g {
		g[i] = make([]string, 14)
	}
	g[2][1], g[2][2] = "09.00-10.30", "Матем_экз"

	start := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	entries := ttparser.Walk(g, ttparser.DefaultLayout(), start, []int{1})
	if len(entries) != 1 || entries[0].Date != "02.09.2024" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	entries = ttparser.Refine(entries, ttparser.DefaultSuffixes())
	if entries[0].Subject != "Матем" || entries[0].Type != ttparser.Exam {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}

	ev, err := NewEvent(entries[0], 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := ev.Start.Format(time.RFC3339); got != "2024-09-02T09:00:00+04:00" {
		t.Errorf("start = %s", got)
	}
	if got := ev.End.Format(time.RFC3339); got != "2024-09-02T10:30:00+04:00" {
		t.Errorf("end = %s", got)
	}
}

func TestWrite(t *testing.T) {
	events, skipped := BuildEvents([]ttparser.Entry{
		{Subject: "Матем", Teacher: "Иванов И.И.", Classroom: "101", Time: "09.00-10.30", Date: "02.09.2024"},
		{Subject: "Физика", Teacher: "NA", Classroom: "102", Time: "10.40-12.10", Date: "02.09.2024"},
	}, 4)
	if len(skipped) != 0 {
		t.Fatal(skipped)
	}

	buf := new(bytes.Buffer)
	if err := Write(buf, events, WriteOptions{Stamp: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatal(err)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	parsed := cal.Events()
	if len(parsed) != 2 {
		t.Fatalf("parsed %d events", len(parsed))
	}
	if got := parsed[0].GetProperty(ical.ComponentPropertySummary).Value; got != "Матем (Иванов И.И.)" {
		t.Errorf("SUMMARY = %q", got)
	}
	if got := parsed[0].Id(); got != UID(events[0]) {
		t.Errorf("UID = %q", got)
	}
	if !strings.Contains(buf.String(), "DTSTART:20240902T050000Z") {
		t.Errorf("DTSTART missing in\n%s", buf.String())
	}
}

func TestUIDStable(t *testing.T) {
	a := Event{UIDKey: "02.09.2024|09.00-10.30|Матем|101|0"}
	b := Event{UIDKey: "02.09.2024|09.00-10.30|Матем|102|0"}
	if UID(a) != UID(a) {
		t.Error("UID is not stable")
	}
	if UID(a) == UID(b) {
		t.Error("UID collision")
	}
}
