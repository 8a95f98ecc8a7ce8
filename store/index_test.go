package store

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeIndexCSV(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "index.csv")
	payload := "date,value\n" +
		"2024-01-01,100.0\n" +
		"2024-01-02,100.5\n" +
		"2024-01-03,101.2\n"
	if err := os.WriteFile(file, []byte(payload), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return file
}

func TestLoadIndexSeries_FromDisk(t *testing.T) {
	file := writeIndexCSV(t)

	// a fresh file must be served from disk, so no URL is needed
	series, err := LoadIndexSeries("", file, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coef, err := series.Coefficient(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(coef-100.5) > 1e-9 {
		t.Errorf("expected coefficient 100.5, got %v", coef)
	}

	latest, ok := series.Latest()
	if !ok {
		t.Fatalf("expected a latest observation")
	}
	if math.Abs(latest.Value-101.2) > 1e-9 {
		t.Errorf("expected latest value 101.2, got %v", latest.Value)
	}
}

func TestIndexSeries_CoefficientNotFound(t *testing.T) {
	file := writeIndexCSV(t)
	series, err := LoadIndexSeries("", file, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := series.Coefficient(time.Date(2020, 5, 5, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Errorf("expected an error for a date outside the series")
	}
}

func TestLoadIndexSeries_SkipsMalformedRows(t *testing.T) {
	file := filepath.Join(t.TempDir(), "index.csv")
	payload := "date,value\n" +
		"not-a-date,100.0\n" +
		"2024-01-02,not-a-number\n" +
		"2024-01-03,101.2\n"
	if err := os.WriteFile(file, []byte(payload), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	series, err := LoadIndexSeries("", file, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := series.Coefficient(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Errorf("valid row should survive malformed neighbours: %v", err)
	}
	if _, err := series.Coefficient(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Errorf("malformed row should be dropped")
	}
}
