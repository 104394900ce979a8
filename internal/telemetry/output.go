package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/Pmuzik/Ecosystem-Project/internal/sims/ecosystem"
)

// Recorder writes per-tick census rows and the run configuration into an
// output directory.
type Recorder struct {
	dir        string
	censusFile *os.File

	headerWritten bool
	rows          int
}

// NewRecorder creates the output directory and opens census.csv.
// Returns nil if dir is empty (recording disabled); a nil Recorder is safe to use.
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "census.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating census.csv: %w", err)
	}
	return &Recorder{dir: dir, censusFile: f}, nil
}

// WriteConfig saves the run configuration as config.yaml.
func (r *Recorder) WriteConfig(cfg ecosystem.Config) error {
	if r == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(r.dir, "config.yaml"))
}

// Record appends one census row to census.csv.
func (r *Recorder) Record(c Census) error {
	if r == nil {
		return nil
	}

	records := []Census{c}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.censusFile); err != nil {
			return fmt.Errorf("writing census: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.censusFile); err != nil {
			return fmt.Errorf("writing census: %w", err)
		}
	}
	r.rows++
	return nil
}

// Rows returns how many census rows have been written.
func (r *Recorder) Rows() int {
	if r == nil {
		return 0
	}
	return r.rows
}

// Dir returns the output directory path.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Close flushes and closes the census file.
func (r *Recorder) Close() error {
	if r == nil || r.censusFile == nil {
		return nil
	}
	err := r.censusFile.Close()
	r.censusFile = nil
	return err
}

// ReadCensus loads every row of a census.csv file.
func ReadCensus(path string) ([]Census, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening census: %w", err)
	}
	defer f.Close()

	var rows []Census
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("reading census: %w", err)
	}
	return rows, nil
}
