package ttparser

import (
	"fmt"
	"strings"
)

// DefaultMarker heads both instructor tables in the sheet.
const DefaultMarker = "Преподаватель"

type Position struct {
	Row, Col int
}

// FindHeaders returns positions of all cells equal to marker. Cells are
// scanned column by column, top to bottom.
func FindHeaders(g Grid, marker string) []Position {
	res := []Position(nil)
	cols := g.Cols()
	for col := 0; col < cols; col++ {
		for row := 0; row < g.Rows(); row++ {
			if g.Cell(row, col) == marker {
				res = append(res, Position{row, col})
			}
		}
	}
	return res
}

// StructuralError means the instructor tables could not be located.
type StructuralError struct {
	Found  int
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("instructor tables: %s", e.Reason)
	}
	return fmt.Sprintf("instructor tables: need 2 headers, found %d", e.Found)
}

type DisciplineRow struct {
	Teacher    string
	Discipline string
	// Columns to the right of Discipline, when table is wider than 2.
	Extra []string
}

// ExtractDisciplines reads two instructor tables anchored at the first
// two header positions and merges them. width is the number of columns
// per table, at least 2.
func ExtractDisciplines(g Grid, headers []Position, width int) ([]DisciplineRow, error) {
	if width < 2 {
		width = 2
	}
	if len(headers) < 2 {
		return nil, &StructuralError{Found: len(headers)}
	}
	first, second := headers[0], headers[1]
	if first.Col < second.Col+width && second.Col < first.Col+width {
		return nil, &StructuralError{
			Found: len(headers),
			Reason: fmt.Sprintf("tables at (%d,%d) and (%d,%d) share columns",
				first.Row, first.Col, second.Row, second.Col),
		}
	}

	// Rows are duplicates only when all sliced columns are equal.
	seen := make(map[string]bool)
	res := []DisciplineRow(nil)
	for _, hdr := range []Position{first, second} {
		for _, row := range sliceTable(g, hdr, width) {
			key := strings.Join(append([]string{row.Teacher, row.Discipline}, row.Extra...), "\x00")
			if seen[key] {
				continue
			}
			seen[key] = true
			res = append(res, row)
		}
	}
	return res, nil
}

func sliceTable(g Grid, hdr Position, width int) []DisciplineRow {
	res := []DisciplineRow(nil)
	for row := hdr.Row + 1; row < g.Rows(); row++ {
		cells := make([]string, width)
		empty := true
		for i := range cells {
			cells[i] = g.Cell(row, hdr.Col+i)
			if cells[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		entry := DisciplineRow{Teacher: cells[0], Discipline: cells[1]}
		if width > 2 {
			entry.Extra = cells[2:]
		}
		res = append(res, entry)
	}
	return res
}
