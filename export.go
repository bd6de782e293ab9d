package main

import (
	"os"
	"strconv"

	"github.com/foxcpp/timetable_ics/ttparser"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

type csvSession struct {
	Date      string `csv:"date"`
	Time      string `csv:"time"`
	Subject   string `csv:"subject"`
	Teacher   string `csv:"teacher"`
	Classroom string `csv:"classroom"`
	Type      string `csv:"type"`
	Presence  string `csv:"presence"`
	Subgroup  string `csv:"subgroup"`
}

func toCSV(entries []ttparser.Entry) []csvSession {
	res := make([]csvSession, len(entries))
	for i, e := range entries {
		res[i] = csvSession{
			Date:      e.Date,
			Time:      e.Time,
			Subject:   e.Subject,
			Teacher:   e.Teacher,
			Classroom: e.Classroom,
			Type:      e.Type.String(),
			Presence:  e.Presence.String(),
		}
		if e.Subgroup != 0 {
			res[i].Subgroup = strconv.Itoa(e.Subgroup)
		}
	}
	return res
}

func exportCSV(path string, entries []ttparser.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create csv")
	}
	defer f.Close()

	rows := toCSV(entries)
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return errors.Wrap(err, "write csv")
	}
	return f.Close()
}
