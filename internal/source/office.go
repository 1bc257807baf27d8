package source

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lu4p/cat"
	"github.com/xuri/excelize/v2"
)

// readSpreadsheet returns one page per sheet and one tab-separated line per row.
func (r *Reader) readSpreadsheet(content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	pages := make([]string, 0, len(sheets))
	for i, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		var buf strings.Builder
		for _, row := range rows {
			buf.WriteString(strings.Join(row, "\t"))
			buf.WriteByte('\n')
		}
		pages = append(pages, buf.String())
		r.progress(i+1, len(sheets))
	}
	return strings.Join(pages, PageSeparator), nil
}

func readOffice(content []byte) (string, error) {
	text, err := cat.FromBytes(content)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return text, nil
}

// readPlain returns content as a string. Invalid UTF-8 sequences are
// replaced with the replacement character.
func readPlain(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), "\ufffd"), nil
	}
	return string(content), nil
}
