package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"neuron-forge/internal/model"
)

var csvHeader = []string{"name", "weight", "height", "label"}

// LoadCSV reads raw measurements from path. See ReadCSV for the format.
func LoadCSV(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	samples, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return samples, nil
}

// ReadCSV parses rows of name,weight,height,label with weight in pounds and
// height in inches. The header row is required.
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", model.ErrInvalidInput)
	}
	if err != nil {
		return nil, shapeErr(err)
	}
	for i, col := range csvHeader {
		if strings.ToLower(strings.TrimSpace(header[i])) != col {
			return nil, fmt.Errorf("%w: header column %d: got %q want %q", model.ErrInvalidInput, i+1, header[i], col)
		}
	}

	var samples []Sample
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, shapeErr(err)
		}
		line, _ := cr.FieldPos(0)
		weight, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: weight: %w", line, err)
		}
		height, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: height: %w", line, err)
		}
		label, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: label: %w", line, err)
		}
		samples = append(samples, FromMeasurements(rec[0], weight, height, label))
	}
	if err := Validate(samples); err != nil {
		return nil, err
	}
	return samples, nil
}

// shapeErr marks a row with the wrong number of fields as invalid input.
func shapeErr(err error) error {
	if errors.Is(err, csv.ErrFieldCount) {
		return fmt.Errorf("%w: %w", model.ErrInvalidInput, err)
	}
	return err
}

// ParsePerson parses "name:weight:height" into an unlabelled Sample.
func ParsePerson(s string) (Sample, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Sample{}, fmt.Errorf("person %q: %w: want name:weight:height", s, model.ErrInvalidInput)
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Sample{}, fmt.Errorf("person %q: weight: %w", s, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return Sample{}, fmt.Errorf("person %q: height: %w", s, err)
	}
	return FromMeasurements(strings.TrimSpace(parts[0]), weight, height, Male), nil
}
