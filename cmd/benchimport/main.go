// benchimport converts a benchmark spreadsheet snapshot into the JSON
// catalog format the bot loads at startup. Expected sheet layout: a
// header row, then one row per entry with columns id, name, mark.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type catalogEntry struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	NameLower string `json:"name_lower"`
	CPUMark   string `json:"cpu_mark,omitempty"`
	GPU3DMark string `json:"gpu_3d_mark,omitempty"`
}

func main() {
	var (
		in    = flag.String("in", "", "input .xlsx snapshot")
		sheet = flag.String("sheet", "Sheet1", "sheet name")
		kind  = flag.String("kind", "cpu", "catalog kind: cpu or gpu")
		out   = flag.String("out", "", "output .json catalog")
	)
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *kind != "cpu" && *kind != "gpu" {
		log.Fatalf("unknown kind %q, want cpu or gpu", *kind)
	}

	entries, err := convert(*in, *sheet, *kind)
	if err != nil {
		log.Fatalf("converting %s: %v", *in, err)
	}

	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %d %s entries to %s\n", len(entries), *kind, *out)
}

func convert(path, sheet, kind string) ([]catalogEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	entries := make([]catalogEntry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad id %q", i+2, row[0])
		}
		name := strings.TrimSpace(row[1])
		if name == "" || strings.EqualFold(name, "NA") {
			continue
		}

		e := catalogEntry{
			ID:        id,
			Name:      name,
			NameLower: strings.ReplaceAll(strings.ToLower(name), "-", " "),
		}
		mark := normalizeMark(row[2])
		if kind == "cpu" {
			e.CPUMark = mark
		} else {
			e.GPU3DMark = mark
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// normalizeMark maps the spreadsheet's NA spellings to zero, matching
// what the original snapshot files carry for untested hardware.
func normalizeMark(raw string) string {
	v := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if v == "" || strings.EqualFold(v, "NA") || strings.EqualFold(v, "Not Available") {
		return "0"
	}
	return v
}
