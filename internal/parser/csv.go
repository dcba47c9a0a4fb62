package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV files. Rows are rendered as labeled values in
// batches so a spreadsheet reads as prose-like blocks.
type CSVParser struct{}

const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*Result, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	res := &Result{Title: titleFromFilename(filename)}
	if len(records) == 0 {
		return res, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	var out textBuilder
	out.Add("Headers: " + strings.Join(headers, ", "))

	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := i + csvBatchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var block strings.Builder
		// Row numbers are 1-indexed in the source file, header included.
		fmt.Fprintf(&block, "Rows %d to %d.\n", i+2, end+1)
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					block.WriteString(headers[j] + ": " + cell)
				} else {
					block.WriteString(cell)
				}
				if j < len(row)-1 {
					block.WriteString(", ")
				}
			}
			block.WriteString("\n")
		}
		out.Add(block.String())
	}

	res.Text = out.String()
	return res, nil
}
