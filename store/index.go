package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"time"
)

// DateFormat is the date layout of the index CSV.
const DateFormat = "2006-01-02"

// IndexPoint is one observation of an adjustment index (CER style) used to
// scale the face value of indexed bonds.
type IndexPoint struct {
	Date  time.Time
	Value float64
}

// IndexSeries holds the adjustment index ordered by date.
type IndexSeries struct {
	points []IndexPoint
}

// Coefficient returns the index value for an exact date. Most recent
// observations are checked first.
func (s *IndexSeries) Coefficient(date time.Time) (float64, error) {
	y, m, d := date.Date()
	for i := len(s.points) - 1; i >= 0; i-- {
		py, pm, pd := s.points[i].Date.Date()
		if py == y && pm == m && pd == d {
			return s.points[i].Value, nil
		}
	}
	return 0, fmt.Errorf("index value not found for date %s", date.Format(DateFormat))
}

// Latest returns the most recent observation, or false when the series is
// empty.
func (s *IndexSeries) Latest() (IndexPoint, bool) {
	if len(s.points) == 0 {
		return IndexPoint{}, false
	}
	return s.points[len(s.points)-1], true
}

// LoadIndexSeries returns the adjustment index, reading a disk copy newer
// than maxAge and downloading from url otherwise. A fresh download is saved
// back to file for the next run.
func LoadIndexSeries(url, file string, maxAge time.Duration) (*IndexSeries, error) {
	var reader *csv.Reader
	var saveFile bool

	fileInfo, _ := os.Stat(file)
	if fileInfo != nil && time.Since(fileInfo.ModTime()) < maxAge {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open index file: %w", err)
		}
		defer f.Close()
		reader = csv.NewReader(f)
	} else {
		body, err := downloadIndex(url)
		if err != nil {
			return nil, err
		}
		defer body.Close()
		reader = csv.NewReader(body)
		saveFile = true
	}

	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read index csv: %w", err)
	}

	if saveFile && file != "" {
		if err := writeIndexFile(file, rows); err != nil {
			return nil, err
		}
	}

	series := &IndexSeries{}
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) < 2 {
			continue
		}
		date, err := time.Parse(DateFormat, rows[i][0])
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(rows[i][1], 64)
		if err != nil {
			continue
		}
		series.points = append(series.points, IndexPoint{Date: date, Value: value})
	}
	sort.Slice(series.points, func(i, j int) bool {
		return series.points[i].Date.Before(series.points[j].Date)
	})
	return series, nil
}

func downloadIndex(url string) (io.ReadCloser, error) {
	client := http.Client{
		Timeout: time.Second * 10,
	}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download index: %w", err)
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download index: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("download index: unexpected status %s", res.Status)
	}
	return res.Body, nil
}

func writeIndexFile(file string, rows [][]string) error {
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("save index file: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("save index file: %w", err)
	}
	w.Flush()
	return w.Error()
}
