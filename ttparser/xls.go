package ttparser

import (
	"io"
	"os"

	"github.com/extrame/xls"
	"github.com/pkg/errors"
)

// OpenXLS reads a sheet from legacy BIFF (.xls) workbook.
func OpenXLS(path, sheet string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open xls")
	}
	defer f.Close()
	return OpenXLSReader(f, sheet)
}

func OpenXLSReader(in io.ReadSeeker, sheet string) (Grid, error) {
	book, err := xls.OpenReader(in, "utf-8")
	if err != nil {
		return nil, errors.Wrap(err, "xls parse")
	}

	var ws *xls.WorkSheet
	for i := 0; i < book.NumSheets(); i++ {
		s := book.GetSheet(i)
		if s == nil {
			continue
		}
		if sheet == "" || s.Name == sheet {
			ws = s
			break
		}
	}
	if ws == nil {
		return nil, errors.Errorf("sheet not found: %q", sheet)
	}

	res := make(Grid, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		res[i] = cells
	}
	return res, nil
}
