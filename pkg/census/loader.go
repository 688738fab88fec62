package census

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"tabprep/pkg/table"
)

// missing reports a cell that holds no value. The adult dataset marks
// missing cells with "?".
func missing(s string) bool {
	switch s {
	case "", "?", "NA", "NaN":
		return true
	}
	return false
}

// ReadTable parses adult-format CSV records (schema columns followed by the
// income label, no header) into a table and a 0/1 label vector.
func ReadTable(r io.Reader) (*table.Table, []float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	floats := make([][]float64, len(Schema))
	strs := make([][]string, len(Schema))
	valid := make([][]bool, len(Schema))
	var labels []float64

	row := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", row+1, err)
		}
		if len(rec) != len(Schema)+1 {
			return nil, nil, fmt.Errorf("record %d: got %d fields, want %d", row+1, len(rec), len(Schema)+1)
		}
		for j, f := range Schema {
			cell := strings.TrimSpace(rec[j])
			if f.Kind.Numeric() {
				if missing(cell) {
					floats[j] = append(floats[j], math.NaN())
					continue
				}
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, nil, fmt.Errorf("record %d, column %q: %w", row+1, f.Name, err)
				}
				floats[j] = append(floats[j], v)
			} else {
				strs[j] = append(strs[j], cell)
				valid[j] = append(valid[j], !missing(cell))
			}
		}
		label := strings.TrimSpace(rec[len(Schema)])
		if strings.HasPrefix(label, PositiveLabel) {
			labels = append(labels, 1)
		} else {
			labels = append(labels, 0)
		}
		row++
	}

	t := table.New(row)
	for j, f := range Schema {
		var c table.Column
		if f.Kind.Numeric() {
			c = table.Column{Name: f.Name, Kind: f.Kind, Floats: floats[j]}
		} else {
			c = table.StrCol(f.Name, strs[j], valid[j])
		}
		if err := t.Append(c); err != nil {
			return nil, nil, err
		}
	}
	return t, labels, nil
}

// LoadFile reads an adult-format CSV file.
func LoadFile(path string) (*table.Table, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadTable(f)
}
