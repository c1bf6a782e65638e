package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"aeropulse/internal/domain"
)

// Writer implements domain.ReviewExporter.
type Writer struct{}

func (Writer) Export(path string, rs []domain.Review) (int, error) { return Write(path, rs) }

// Write saves rs to path as comma-separated UTF-8 with a header row of
// domain.Columns. Missing parent directories are created. An empty
// collection returns domain.ErrNothingToSave and leaves the filesystem alone.
func Write(path string, rs []domain.Review) (int, error) {
	if len(rs) == 0 {
		return 0, domain.ErrNothingToSave
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(domain.Columns); err != nil {
		f.Close()
		return 0, fmt.Errorf("write header: %w", err)
	}
	for _, r := range rs {
		if err := w.Write(r.Row()); err != nil {
			f.Close()
			return 0, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return 0, fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	return len(rs), nil
}
