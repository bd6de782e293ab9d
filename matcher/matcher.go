// Package matcher assigns teachers to sessions by comparing subject names
// with disciplines from instructor tables.
package matcher

import (
	"strings"

	"github.com/foxcpp/timetable_ics/ttparser"
	"github.com/pkg/errors"
)

// Unknown is set as teacher when nothing matched.
const Unknown = "NA"

const DefaultThreshold = 60

type Strategy string

const (
	Fuzzy  Strategy = "fuzzy"
	Prefix Strategy = "prefix"
)

const prefixLen = 3

// DefaultExceptions lists subject labels that are too different from
// their disciplines for automatic matching.
func DefaultExceptions() map[string]string {
	return map[string]string{
		"МПК_англ":         "Межкульт_проф_комм",
		"МПК_англ_зачёт":   "Межкульт_проф_комм",
		"Р_и_АТ_к_ПО_экз":  "Разр_и_ан_треб_к_ПО",
		"ОПД_зачёт_ОНЛАЙН": "Осн_проект_деятель",
		"БД_1 подгруппа":   "Базы данных",
		"БД_2 подгруппа":   "Базы данных",
	}
}

type Options struct {
	Strategy Strategy
	// Scores at or below Threshold are rejected, 0 accepts any positive
	// score. Nil means DefaultThreshold.
	Threshold *int
	// Subject text to discipline text.
	Exceptions map[string]string
}

type candidate struct {
	discipline string
	teacher    string
}

type Matcher struct {
	strategy  Strategy
	threshold int

	// Distinct disciplines in order of appearance with the first teacher
	// seen for each.
	candidates []candidate
	byPrefix   map[string]string
	exceptions map[string]string
}

func New(rows []ttparser.DisciplineRow, opts Options) (*Matcher, error) {
	m := &Matcher{
		strategy:   opts.Strategy,
		threshold:  DefaultThreshold,
		byPrefix:   make(map[string]string),
		exceptions: make(map[string]string),
	}
	switch m.strategy {
	case "":
		m.strategy = Fuzzy
	case Fuzzy, Prefix:
	default:
		return nil, errors.Errorf("unknown match strategy: %q", opts.Strategy)
	}
	if opts.Threshold != nil {
		if *opts.Threshold < 0 || *opts.Threshold > 100 {
			return nil, errors.Errorf("match threshold out of range 0-100: %d", *opts.Threshold)
		}
		m.threshold = *opts.Threshold
	}

	byDiscipline := make(map[string]string)
	for _, row := range rows {
		if row.Discipline == "" || row.Teacher == "" {
			continue
		}
		if _, prs := byDiscipline[row.Discipline]; !prs {
			byDiscipline[row.Discipline] = row.Teacher
			m.candidates = append(m.candidates, candidate{row.Discipline, row.Teacher})
		}
		key := prefix(row.Discipline)
		if _, prs := m.byPrefix[key]; !prs {
			m.byPrefix[key] = row.Teacher
		}
	}

	for subject, discipline := range opts.Exceptions {
		if teacher, prs := byDiscipline[discipline]; prs {
			m.exceptions[subject] = teacher
		}
	}
	return m, nil
}

func prefix(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) > prefixLen {
		r = r[:prefixLen]
	}
	return string(r)
}

// Match resolves teacher for a cleaned subject name. label is the
// subject text as found in the sheet and is consulted only in the
// exception table.
func (m *Matcher) Match(subject, label string) (string, bool) {
	if teacher, ok := m.primary(subject); ok {
		return teacher, true
	}
	if teacher, ok := m.exceptions[label]; ok {
		return teacher, true
	}
	if teacher, ok := m.exceptions[subject]; ok {
		return teacher, true
	}
	return Unknown, false
}

func (m *Matcher) primary(subject string) (string, bool) {
	if subject == "" {
		return "", false
	}
	if m.strategy == Prefix {
		teacher, ok := m.byPrefix[prefix(subject)]
		return teacher, ok
	}

	bestScore, best := -1, -1
	for i, c := range m.candidates {
		if score := Score(subject, c.discipline); score > bestScore {
			bestScore, best = score, i
		}
	}
	if best < 0 || bestScore <= m.threshold {
		return "", false
	}
	return m.candidates[best].teacher, true
}

// Resolve returns copies of entries with Teacher set. Entries that could
// not be matched get Unknown.
func (m *Matcher) Resolve(entries []ttparser.Entry) []ttparser.Entry {
	res := make([]ttparser.Entry, len(entries))
	for i, e := range entries {
		e.Teacher, _ = m.Match(e.Subject, e.Label)
		res[i] = e
	}
	return res
}

// Unresolved lists distinct subjects that got Unknown teacher.
func Unresolved(entries []ttparser.Entry) []string {
	seen := make(map[string]bool)
	res := []string(nil)
	for _, e := range entries {
		if e.Teacher != Unknown || seen[e.Subject] {
			continue
		}
		seen[e.Subject] = true
		res = append(res, e.Subject)
	}
	return res
}
