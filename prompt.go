package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/foxcpp/timetable_ics/ttparser"
	"github.com/pkg/errors"
)

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{bufio.NewReader(in), out}
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.Wrap(err, "read answer")
	}
	return strings.TrimSpace(line), nil
}

// Run parameters that are asked interactively when not given as flags.
type runParams struct {
	AcademicYear string
	Start        string // DD.MM
	NumWeeks     int
	Select       string // comma-separated weeks, empty for all
	selectSet    bool
}

// complete asks for missing parameters and returns the first week start
// and the weeks to extract.
func (p *prompter) complete(params runParams) (time.Time, []int, error) {
	var err error
	if params.AcademicYear == "" {
		params.AcademicYear, err = p.ask("Введите учебный год (например, 2024-2025): ")
		if err != nil {
			return time.Time{}, nil, err
		}
	}
	if params.Start == "" {
		params.Start, err = p.ask("Введите дату начала первой недели (например, 20.01): ")
		if err != nil {
			return time.Time{}, nil, err
		}
	}
	start, err := ttparser.StartDate(params.AcademicYear, params.Start)
	if err != nil {
		return time.Time{}, nil, err
	}

	if params.NumWeeks <= 0 {
		answer, err := p.ask("Введите количество учебных недель: ")
		if err != nil {
			return time.Time{}, nil, err
		}
		params.NumWeeks, err = strconv.Atoi(answer)
		if err != nil || params.NumWeeks <= 0 {
			return time.Time{}, nil, errors.Wrapf(ttparser.ErrInvalidFormat, "number of weeks %q", answer)
		}
	}
	if !params.selectSet {
		// Optional, closed input means all weeks.
		params.Select, err = p.ask("Введите номера недель через запятую (пусто - все): ")
		if err != nil && errors.Cause(err) != io.EOF {
			return time.Time{}, nil, err
		}
	}
	weeks, err := ttparser.Weeks(params.NumWeeks, params.Select)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, weeks, nil
}
