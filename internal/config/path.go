package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrMissingColumns is returned when a path CSV header lacks x or y.
var ErrMissingColumns = errors.New("path csv header must contain x and y columns")

// GetPath returns the configured waypoints, or nil when none are set.
func (c *TuningConfig) GetPath() []r2.Vec {
	if len(c.Path) == 0 {
		return nil
	}
	out := make([]r2.Vec, len(c.Path))
	for i, p := range c.Path {
		out[i] = r2.Vec{X: p[0], Y: p[1]}
	}
	return out
}

// LoadPathCSV reads waypoints from a CSV file whose header names x and y
// columns. Extra columns are ignored and column order is free.
func LoadPathCSV(path string) ([]r2.Vec, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".csv" {
		return nil, fmt.Errorf("path file must have .csv extension, got %q", ext)
	}
	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open path file: %w", err)
	}
	defer f.Close()

	pts, err := ReadPathCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cleanPath, err)
	}
	return pts, nil
}

// ReadPathCSV parses waypoints from r. See LoadPathCSV.
func ReadPathCSV(r io.Reader) ([]r2.Vec, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingColumns
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	xi, yi := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "x":
			xi = i
		case "y":
			yi = i
		}
	}
	if xi < 0 || yi < 0 {
		return nil, ErrMissingColumns
	}

	var pts []r2.Vec
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) <= xi || len(rec) <= yi {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, max(xi, yi)+1, len(rec))
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[xi]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse x: %w", line, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(rec[yi]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse y: %w", line, err)
		}
		pts = append(pts, r2.Vec{X: x, Y: y})
	}
	return pts, nil
}
