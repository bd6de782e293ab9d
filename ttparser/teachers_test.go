package ttparser

import (
	"reflect"
	"testing"
)

func newGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = make([]string, cols)
	}
	return g
}

func instructorGrid() Grid {
	g := newGrid(6, 6)
	g[0][0], g[0][1] = "Преподаватель", "Дисциплина"
	g[0][3], g[0][4] = " Преподаватель ", "Дисциплина"
	g[1][0], g[1][1] = "Иванов И.И.", "Математика"
	g[1][3], g[1][4] = "Петров П.П.", "Физика"
	g[2][3], g[2][4] = "Иванов И.И.", "Математика"
	g[4][0], g[4][1] = "Сидоров С.С.", "Базы данных"
	g[5][1] = "Иностранный язык"
	return g
}

func TestFindHeaders(t *testing.T) {
	got := FindHeaders(instructorGrid(), DefaultMarker)
	want := []Position{{0, 0}, {0, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFindHeadersColumnMajor(t *testing.T) {
	g := newGrid(8, 6)
	g[5][1] = "Преподаватель"
	g[0][4] = "Преподаватель"
	g[2][2] = "Преподаватель (ассистент)"

	got := FindHeaders(g, DefaultMarker)
	want := []Position{{5, 1}, {0, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if res := FindHeaders(g, "Instructor"); len(res) != 0 {
		t.Errorf("unexpected match: %v", res)
	}
}

func TestExtractDisciplines(t *testing.T) {
	g := instructorGrid()
	got, err := ExtractDisciplines(g, FindHeaders(g, DefaultMarker), 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []DisciplineRow{
		{Teacher: "Иванов И.И.", Discipline: "Математика"},
		{Teacher: "Сидоров С.С.", Discipline: "Базы данных"},
		{Teacher: "", Discipline: "Иностранный язык"},
		{Teacher: "Петров П.П.", Discipline: "Физика"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestExtractDisciplinesWide(t *testing.T) {
	g := newGrid(3, 8)
	g[0][0] = "Преподаватель"
	g[0][4] = "Преподаватель"
	g[1][0], g[1][1], g[1][2] = "Иванов И.И.", "Математика", "лекции"
	g[2][2] = "практика"

	got, err := ExtractDisciplines(g, FindHeaders(g, DefaultMarker), 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []DisciplineRow{
		{"Иванов И.И.", "Математика", []string{"лекции"}},
		{"", "", []string{"практика"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestExtractDisciplinesWideDuplicates(t *testing.T) {
	g := newGrid(4, 8)
	g[0][0] = "Преподаватель"
	g[0][4] = "Преподаватель"
	g[1][0], g[1][1], g[1][2] = "Иванов И.И.", "Математика", "лекции"
	g[2][0], g[2][1], g[2][2] = "Иванов И.И.", "Математика", "практика"
	g[1][4], g[1][5], g[1][6] = "Иванов И.И.", "Математика", "лекции"

	got, err := ExtractDisciplines(g, FindHeaders(g, DefaultMarker), 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []DisciplineRow{
		{"Иванов И.И.", "Математика", []string{"лекции"}},
		{"Иванов И.И.", "Математика", []string{"практика"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestExtractDisciplinesStructuralErrors(t *testing.T) {
	g := instructorGrid()

	_, err := ExtractDisciplines(g, []Position{{0, 0}}, 2)
	serr, ok := err.(*StructuralError)
	if !ok {
		t.Fatalf("expected *StructuralError, got %v", err)
	}
	if serr.Found != 1 {
		t.Errorf("Found = %d", serr.Found)
	}

	if _, err := ExtractDisciplines(g, nil, 2); err == nil {
		t.Error("expected error without headers")
	}

	_, err = ExtractDisciplines(g, []Position{{0, 0}, {3, 1}}, 2)
	if _, ok := err.(*StructuralError); !ok {
		t.Errorf("expected *StructuralError for overlapping tables, got %v", err)
	}
}
