package sort_bench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Row is the averaged result of one benchmark triple. Rows are never
// modified after the driver creates them.
type Row struct {
	Algorithm    string
	Distribution string
	Size         int
	AverageMs    float64
	StdDevMs     float64
	Repeats      int
	Failures     int
}

// Sink receives rows as the driver completes them.
type Sink interface {
	Append(row *Row) error
	Close() error
}

var CSVHeader = []string{"Algorithm", "Data Type", "Array Size", "Time (ms)"}

func formatMs(ms float64) string {
	return strconv.FormatFloat(ms, 'f', -1, 64)
}

// CSVSink writes one comma separated line per row after a header line. Every
// append is flushed so progress can be followed while a run is going.
type CSVSink struct {
	w      *csv.Writer
	closer io.Closer
}

func NewCSVSink(w io.Writer) (*CSVSink, error) {
	s := &CSVSink{w: csv.NewWriter(w)}
	if err := s.write(CSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	return s, nil
}

// CreateCSVFile creates (or truncates) path and returns a sink that closes
// the file on Close.
func CreateCSVFile(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create result file %s: %w", path, err)
	}
	s, err := NewCSVSink(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

func (s *CSVSink) write(record []string) error {
	if err := s.w.Write(record); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *CSVSink) Append(row *Row) error {
	return s.write([]string{
		row.Algorithm,
		row.Distribution,
		strconv.Itoa(row.Size),
		formatMs(row.AverageMs),
	})
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
	}
	return err
}

// MemorySink keeps every row for later inspection.
type MemorySink struct {
	Rows []*Row
}

func (m *MemorySink) Append(row *Row) error {
	m.Rows = append(m.Rows, row)
	return nil
}

func (m *MemorySink) Close() error { return nil }

// TableSink collects rows and renders them as a table when closed.
type TableSink struct {
	MemorySink
	out io.Writer
}

func NewTableSink(out io.Writer) *TableSink {
	return &TableSink{out: out}
}

func (t *TableSink) Close() error {
	if len(t.Rows) == 0 {
		return nil
	}
	table := tablewriter.NewWriter(t.out)
	table.SetHeader([]string{"Algorithm", "Data Type", "Size", "Avg (ms)", "StdDev (ms)", "Failures"})
	for _, r := range t.Rows {
		table.Append([]string{
			r.Algorithm,
			r.Distribution,
			strconv.Itoa(r.Size),
			strconv.FormatFloat(r.AverageMs, 'f', 4, 64),
			strconv.FormatFloat(r.StdDevMs, 'f', 4, 64),
			fmt.Sprintf("%d/%d", r.Failures, r.Repeats),
		})
	}
	table.Render()
	return nil
}

// MultiSink fans rows out to several sinks.
type MultiSink []Sink

func (m MultiSink) Append(row *Row) error {
	var errs []error
	for _, s := range m {
		if err := s.Append(row); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
