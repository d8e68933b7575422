// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/compound-growth/internal/simulate"
	"github.com/iwvelando/compound-growth/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []simulate.Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		columns := result.Columns()
		_, _ = fmt.Fprintf(w, "--- Results for simulation %s (%s) ---\n", result.Name, result.Kind)
		_, _ = fmt.Fprintf(w, "Year | %s\n", strings.Join(titles(columns), " | "))
		_, _ = fmt.Fprintf(w, "____ | %s\n", strings.Join(underlines(columns), " | "))
		for _, row := range result.Rows() {
			cells := make([]string, len(row.Values))
			for j, v := range row.Values {
				cells[j] = p.Sprintf("%.2f", v)
			}
			_, _ = fmt.Fprintf(w, "%4d | %s\n", row.Year, strings.Join(cells, " | "))
		}
		if len(results) > 1 && i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat writes results in comma-separated value format, one line per
// simulation year.
func CsvFormat(w io.Writer, results []simulate.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"simulation", "kind", "year", "channel", "value"}); err != nil {
		return err
	}
	for _, result := range results {
		columns := result.Columns()
		for _, row := range result.Rows() {
			year := strconv.Itoa(row.Year)
			for i, v := range row.Values {
				if err := writer.Write([]string{result.Name, result.Kind, year, columns[i], format.Fixed(v)}); err != nil {
					return err
				}
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV rendering of results.
func CsvString(results []simulate.Result) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		return ""
	}
	return buf.String()
}

// YamlFormat writes the raw series of every result as a YAML document keyed
// by "simulations".
func YamlFormat(w io.Writer, results []simulate.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(map[string][]simulate.Result{"simulations": results}); err != nil {
		return fmt.Errorf("failed to encode results as YAML: %w", err)
	}
	return encoder.Close()
}

func titles(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = strings.ToUpper(c[:1]) + c[1:]
	}
	return out
}

func underlines(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = strings.Repeat("_", len(c))
	}
	return out
}
