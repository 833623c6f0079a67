package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/particlefield/config"
)

// csvLog appends rows to one CSV file. The header goes out with the first write.
type csvLog struct {
	file        *os.File
	wroteHeader bool
}

func createCSVLog(path string) (*csvLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return &csvLog{file: f}, nil
}

// append writes rows, which must be a slice of csv-tagged structs.
func (l *csvLog) append(rows any) error {
	if l.wroteHeader {
		return gocsv.MarshalWithoutHeaders(rows, l.file)
	}
	if err := gocsv.Marshal(rows, l.file); err != nil {
		return err
	}
	l.wroteHeader = true
	return nil
}

// OutputManager writes a run's telemetry: frames.csv, perf.csv and a
// config snapshot. A nil manager discards everything.
type OutputManager struct {
	dir    string
	frames *csvLog
	perf   *csvLog
}

// NewOutputManager creates dir and opens the CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	frames, err := createCSVLog(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, err
	}
	perf, err := createCSVLog(filepath.Join(dir, "perf.csv"))
	if err != nil {
		frames.file.Close()
		return nil, err
	}
	return &OutputManager{dir: dir, frames: frames, perf: perf}, nil
}

// WriteConfig saves cfg as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteFrames appends one window to frames.csv.
func (om *OutputManager) WriteFrames(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.frames.append([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	return nil
}

// WritePerf appends one field's cycle timings to perf.csv.
func (om *OutputManager) WritePerf(field string, stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	if err := om.perf.append([]PerfRow{stats.Row(field, windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// Dir returns the output directory, or "" when disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes both CSV files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.frames.file.Close(), om.perf.file.Close())
}
