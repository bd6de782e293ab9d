package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/foxcpp/timetable_ics/calendar"
	"github.com/foxcpp/timetable_ics/matcher"
	"github.com/foxcpp/timetable_ics/ttparser"
	"github.com/pkg/errors"
)

const usage = `Usage: timetable_ics [flags] [convert|ics]

  convert  read the sheet, store sessions in the database and write calendar (default)
  ics      write calendar from sessions already stored in the database

`

type schedule struct {
	Entries  []ttparser.Entry
	Teachers []ttparser.DisciplineRow
}

// buildSchedule extracts sessions for weeks and resolves their teachers.
func buildSchedule(config Config, grid ttparser.Grid, start time.Time, weeks []int) (schedule, error) {
	suffixes, err := config.suffixes()
	if err != nil {
		return schedule{}, errors.Wrap(err, "suffixes")
	}

	headers := ttparser.FindHeaders(grid, config.HeaderMarker)
	teachers, err := ttparser.ExtractDisciplines(grid, headers, config.TeacherColumns)
	if err != nil {
		return schedule{}, err
	}

	m, err := matcher.New(teachers, matcher.Options{
		Strategy:   config.Strategy,
		Threshold:  &config.Threshold,
		Exceptions: config.Exceptions,
	})
	if err != nil {
		return schedule{}, err
	}

	entries := ttparser.Walk(grid, config.Layout, start, weeks)
	entries = ttparser.Refine(entries, suffixes)
	entries = m.Resolve(entries)

	return schedule{Entries: entries, Teachers: teachers}, nil
}

func writeCalendar(path string, entries []ttparser.Entry, offset int) error {
	events, skipped := calendar.BuildEvents(entries, offset)
	for _, err := range skipped {
		log.Println("WARN: Session skipped:", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create calendar")
	}
	defer f.Close()
	if err := calendar.Write(f, events, calendar.WriteOptions{}); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close calendar")
	}
	log.Printf("Calendar written to %s: %d events, %d skipped.\n", path, len(events), len(skipped))
	return nil
}

func convertCmd(config Config, params runParams) error {
	start, weeks, err := newPrompter(os.Stdin, os.Stdout).complete(params)
	if err != nil {
		return err
	}

	grid, err := ttparser.Open(config.Input, config.Sheet)
	if err != nil {
		return errors.Wrapf(err, "load %s", config.Input)
	}

	sched, err := buildSchedule(config, grid, start, weeks)
	if err != nil {
		return err
	}
	for _, subject := range matcher.Unresolved(sched.Entries) {
		log.Printf("WARN: No teacher found for %q.\n", subject)
	}

	db, err := NewDB(config.DBfile)
	if err != nil {
		return errors.Wrap(err, "open db")
	}
	defer db.Close()
	if err := db.ReplaceSchedule(sched.Entries); err != nil {
		return errors.Wrap(err, "save schedule")
	}
	if err := db.ReplaceTeachers(sched.Teachers); err != nil {
		return errors.Wrap(err, "save teachers")
	}
	log.Printf("Saved %d sessions and %d teachers to %s.\n", len(sched.Entries), len(sched.Teachers), config.DBfile)

	if config.CSV != "" {
		if err := exportCSV(config.CSV, sched.Entries); err != nil {
			return err
		}
	}
	return writeCalendar(config.Output, sched.Entries, config.UTCOffset)
}

func icsCmd(config Config) error {
	db, err := NewDB(config.DBfile)
	if err != nil {
		return errors.Wrap(err, "open db")
	}
	defer db.Close()

	entries, err := db.Sessions()
	if err != nil {
		return err
	}
	return writeCalendar(config.Output, entries, config.UTCOffset)
}

func main() {
	var (
		configPath = flag.String("config", "timetable.yml", "config file")
		csvPath    = flag.String("csv", "", "also export sessions to CSV file")
		params     runParams
	)
	flag.StringVar(&params.AcademicYear, "year", "", "academic year, e.g. 2024-2025")
	flag.StringVar(&params.Start, "start", "", "first day of the first week, DD.MM")
	flag.IntVar(&params.NumWeeks, "weeks", 0, "number of weeks")
	flag.StringVar(&params.Select, "select", "", "comma-separated weeks to extract")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "select" {
			params.selectSet = true
		}
	})

	config, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalln("Failed to load config:", err)
	}
	if *csvPath != "" {
		config.CSV = *csvPath
	}

	cmd := flag.Arg(0)
	switch cmd {
	case "", "convert":
		err = convertCmd(config, params)
	case "ics":
		err = icsCmd(config)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		if se, ok := errors.Cause(err).(*ttparser.StructuralError); ok {
			log.Fatalln("ERROR: Sheet layout is not supported:", se)
		}
		log.Fatalln("ERROR:", err)
	}
}
