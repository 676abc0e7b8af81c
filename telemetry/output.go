package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/ravaan/glyphsim/config"
)

// Output handles structured run output: a stats CSV plus a config
// snapshot. All methods are safe on a nil receiver (output disabled).
type Output struct {
	dir       string
	statsFile *os.File

	statsHeaderWritten bool
}

// NewOutput creates the output directory and opens the stats file.
// Returns nil if dir is empty (output disabled).
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}

	return &Output{dir: dir, statsFile: f}, nil
}

// WriteConfig saves the configuration used for this run as YAML.
func (o *Output) WriteConfig(cfg *config.Config) error {
	if o == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(o.dir, "config.yaml"))
}

// WriteStats appends a window stats record to stats.csv. The header is
// written with the first record only.
func (o *Output) WriteStats(stats WindowStats) error {
	if o == nil {
		return nil
	}

	records := []WindowStats{stats}
	if !o.statsHeaderWritten {
		if err := gocsv.Marshal(records, o.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		o.statsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, o.statsFile); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// Close flushes and closes the output files.
func (o *Output) Close() error {
	if o == nil || o.statsFile == nil {
		return nil
	}
	return o.statsFile.Close()
}
