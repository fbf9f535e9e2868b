// Package catalog loads river specifications from CSV files.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/openpaddle/paddle-planner/internal/entities"
)

// Required columns; a catalog missing any of these is rejected outright.
var requiredColumns = []string{"Name", "Zipcode", "Gauge_ID", "Min_Level", "Max_Level", "Whitewater"}

// Load reads a river catalog CSV and returns the specs in file order.
// Malformed rows are skipped with a warning; optional cells left blank become
// nil fields.
func Load(path string) ([]entities.RiverSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %v", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads catalog rows from r. The first record must be a header naming
// at least the required columns.
func Parse(r io.Reader) ([]entities.RiverSpec, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %v", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("catalog is missing required column %q", name)
		}
	}

	var specs []entities.RiverSpec
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("Warning: skipping malformed catalog line %d: %v", line, err)
			continue
		}

		spec, err := parseRow(cols, record)
		if err != nil {
			log.Printf("Warning: skipping catalog line %d: %v", line, err)
			continue
		}
		specs = append(specs, spec)
	}

	log.Printf("Loaded %d river specs from catalog", len(specs))
	return specs, nil
}

func parseRow(cols map[string]int, record []string) (entities.RiverSpec, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("Name")
	if name == "" {
		return entities.RiverSpec{}, fmt.Errorf("empty river name")
	}

	whitewater, err := strconv.Atoi(field("Whitewater"))
	if err != nil {
		return entities.RiverSpec{}, fmt.Errorf("invalid whitewater value %q: %v", field("Whitewater"), err)
	}

	spec := entities.RiverSpec{
		Name:       name,
		Route:      field("Route"),
		Class:      field("Class"),
		Whitewater: whitewater,
		Zipcode:    padLeft(field("Zipcode"), 5),
		GaugeID:    NormalizeGaugeID(field("Gauge_ID")),
	}

	if v := field("Length"); v != "" {
		length, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return entities.RiverSpec{}, fmt.Errorf("invalid length %q: %v", v, err)
		}
		spec.LengthMiles = length
	}

	spec.MinLevel = optionalFloat(field("Min_Level"))
	spec.MaxLevel = optionalFloat(field("Max_Level"))
	spec.MinCFS = optionalFloat(field("Min_cfs"))
	spec.MaxCFS = optionalFloat(field("Max_cfs"))

	return spec, nil
}

// NormalizeGaugeID zero-pads a USGS site ID to 8 characters.
func NormalizeGaugeID(id string) string {
	return padLeft(id, 8)
}

func padLeft(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func optionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
