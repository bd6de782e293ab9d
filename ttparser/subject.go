package ttparser

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type LessonType int

const (
	Lecture LessonType = iota
	Exam
	GradedPass
	Pass
	CourseworkDefense
)

var typeCodes = map[LessonType]string{
	Lecture:           "lecture",
	Exam:              "exam",
	GradedPass:        "graded_pass",
	Pass:              "pass",
	CourseworkDefense: "coursework_defense",
}

func (t LessonType) String() string {
	if s, ok := typeCodes[t]; ok {
		return s
	}
	return "lecture"
}

// ParseLessonType is the inverse of LessonType.String.
func ParseLessonType(s string) (LessonType, error) {
	for t, code := range typeCodes {
		if code == s {
			return t, nil
		}
	}
	return Lecture, errors.Errorf("unknown lesson type: %q", s)
}

type Presence int

const (
	InPerson Presence = iota
	Online
)

func (p Presence) String() string {
	if p == Online {
		return "online"
	}
	return "in_person"
}

func ParsePresence(s string) (Presence, error) {
	switch s {
	case "in_person":
		return InPerson, nil
	case "online":
		return Online, nil
	}
	return InPerson, errors.Errorf("unknown presence: %q", s)
}

// Suffixes lists tokens that teaching departments append to subject
// names. Tokens are checked in insertion order, so a token must be
// inserted before any shorter token it contains.
type Suffixes struct {
	Types     *orderedmap.OrderedMap[string, LessonType]
	Presence  *orderedmap.OrderedMap[string, Presence]
	Subgroups *orderedmap.OrderedMap[string, int]
}

func DefaultSuffixes() Suffixes {
	s := Suffixes{
		Types:     orderedmap.NewOrderedMap[string, LessonType](),
		Presence:  orderedmap.NewOrderedMap[string, Presence](),
		Subgroups: orderedmap.NewOrderedMap[string, int](),
	}

	s.Types.Set("_защита_КР", CourseworkDefense)
	s.Types.Set("_защита КР", CourseworkDefense)
	s.Types.Set("_зачёт_с_оценкой", GradedPass)
	s.Types.Set("_зачет_с_оценкой", GradedPass)
	s.Types.Set("_диф_зачёт", GradedPass)
	s.Types.Set("_диф_зачет", GradedPass)
	s.Types.Set("_зачёт", Pass)
	s.Types.Set("_зачет", Pass)
	s.Types.Set("_экз", Exam)

	s.Presence.Set("_ОНЛАЙН", Online)
	s.Presence.Set("_онлайн", Online)
	s.Presence.Set("ОНЛАЙН", Online)

	s.Subgroups.Set("_1 подгруппа", 1)
	s.Subgroups.Set("_2 подгруппа", 2)
	s.Subgroups.Set("1 подгруппа", 1)
	s.Subgroups.Set("2 подгруппа", 2)
	s.Subgroups.Set("_1 подгр", 1)
	s.Subgroups.Set("_2 подгр", 2)
	s.Subgroups.Set("1 подгр", 1)
	s.Subgroups.Set("2 подгр", 2)
	return s
}

// SuffixesFromYAML builds tables from ordered yaml mappings of token to
// attribute name. Nil mapping keeps the default table.
func SuffixesFromYAML(types, presence, subgroups yaml.MapSlice) (Suffixes, error) {
	s := DefaultSuffixes()
	if types != nil {
		s.Types = orderedmap.NewOrderedMap[string, LessonType]()
		for _, item := range types {
			t, err := ParseLessonType(yamlString(item.Value))
			if err != nil {
				return s, errors.Wrapf(err, "suffix %v", item.Key)
			}
			s.Types.Set(yamlString(item.Key), t)
		}
	}
	if presence != nil {
		s.Presence = orderedmap.NewOrderedMap[string, Presence]()
		for _, item := range presence {
			p, err := ParsePresence(yamlString(item.Value))
			if err != nil {
				return s, errors.Wrapf(err, "suffix %v", item.Key)
			}
			s.Presence.Set(yamlString(item.Key), p)
		}
	}
	if subgroups != nil {
		s.Subgroups = orderedmap.NewOrderedMap[string, int]()
		for _, item := range subgroups {
			n, ok := item.Value.(int)
			if !ok || n < 1 || n > 2 {
				return s, errors.Errorf("suffix %v: subgroup must be 1 or 2", item.Key)
			}
			s.Subgroups.Set(yamlString(item.Key), n)
		}
	}
	return s, nil
}

func yamlString(v interface{}) string {
	return fmt.Sprint(v)
}

// Subject is a subject label with the suffix tokens stripped.
type Subject struct {
	Name     string
	Type     LessonType
	Presence Presence
	Subgroup int // 0 if the session is for the whole group
}

// ParseSubject never fails: a label without known tokens is returned
// as is with default attributes.
func ParseSubject(label string, s Suffixes) Subject {
	res := Subject{Type: Lecture, Presence: InPerson}

	typeSet := false
	for el := s.Types.Front(); el != nil; el = el.Next() {
		if strings.Contains(label, el.Key) {
			if !typeSet {
				res.Type = el.Value
				typeSet = true
			}
			label = strings.ReplaceAll(label, el.Key, "")
		}
	}
	presenceSet := false
	for el := s.Presence.Front(); el != nil; el = el.Next() {
		if strings.Contains(label, el.Key) {
			if !presenceSet {
				res.Presence = el.Value
				presenceSet = true
			}
			label = strings.ReplaceAll(label, el.Key, "")
		}
	}
	for el := s.Subgroups.Front(); el != nil; el = el.Next() {
		if strings.Contains(label, el.Key) {
			if res.Subgroup == 0 {
				res.Subgroup = el.Value
			}
			label = strings.ReplaceAll(label, el.Key, "")
		}
	}

	res.Name = strings.Join(strings.Fields(label), " ")
	return res
}
