package ttparser

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Grid is a worksheet read fully into memory. Rows may have different
// lengths, missing cells read as empty strings.
type Grid [][]string

// Cell returns trimmed text of the cell or empty string if it is outside
// of the grid.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	if col < 0 || col >= len(g[row]) {
		return ""
	}
	return strings.TrimSpace(g[row][col])
}

func (g Grid) Rows() int {
	return len(g)
}

// Cols returns width of the widest row.
func (g Grid) Cols() int {
	res := 0
	for _, row := range g {
		if len(row) > res {
			res = len(row)
		}
	}
	return res
}

// Open reads one worksheet of the workbook at path. Empty sheet name
// selects the first sheet.
func Open(path, sheet string) (Grid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "open xlsx")
		}
		defer f.Close()
		return readXLSX(f, sheet)
	case ".xls":
		return OpenXLS(path, sheet)
	default:
		return nil, errors.Errorf("unsupported workbook format: %s", path)
	}
}

// OpenXLSXReader is like Open but for a xlsx workbook already in memory.
func OpenXLSXReader(in io.Reader, sheet string) (Grid, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, errors.Wrap(err, "open xlsx")
	}
	defer f.Close()
	return readXLSX(f, sheet)
}

func readXLSX(f *excelize.File, sheet string) (Grid, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %s", sheet)
	}
	return Grid(rows), nil
}
