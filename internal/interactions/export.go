package interactions

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

const exportsDirName = "exports"

// ExportUser writes all of a user's records to a single file under the
// exports directory and returns its path. Records are ordered oldest
// first.
func (l *Log) ExportUser(userID int64, format Format) (string, error) {
	records, err := l.loadRecords(usersDirName, userID, "")
	if err != nil {
		return "", err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	exportDir := filepath.Join(l.baseDir, exportsDirName)
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create exports dir: %w", err)
	}

	name := fmt.Sprintf("user_%d_export_%s.%s",
		userID, l.now().Format("20060102_150405"), format)
	path := filepath.Join(exportDir, name)

	switch format {
	case FormatJSON:
		err = exportJSON(path, records)
	case FormatCSV:
		err = exportCSV(path, records)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func exportJSON(path string, records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func exportCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "type", "details"}); err != nil {
		return err
	}

	for i := range records {
		rec := &records[i]
		details, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal export row: %w", err)
		}
		row := []string{
			rec.Timestamp.Format(time.RFC3339),
			string(rec.Type),
			string(details),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Prune deletes event files older than maxAge across all users and
// groups, returning how many were removed. Aggregate stats are left
// untouched; they describe all-time activity.
func (l *Log) Prune(maxAge time.Duration) (int, error) {
	cutoff := l.now().Add(-maxAge)
	deleted := 0

	for _, scope := range []string{usersDirName, groupsDirName} {
		scopeDir := filepath.Join(l.baseDir, scope)

		entities, err := os.ReadDir(scopeDir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return deleted, fmt.Errorf("read interactions dir: %w", err)
		}

		for _, entity := range entities {
			if !entity.IsDir() {
				continue
			}
			n, err := l.pruneEntity(filepath.Join(scopeDir, entity.Name()), cutoff)
			deleted += n
			if err != nil {
				return deleted, err
			}
		}
	}
	return deleted, nil
}

func (l *Log) pruneEntity(entityDir string, cutoff time.Time) (int, error) {
	deleted := 0

	typeDirs, err := os.ReadDir(entityDir)
	if err != nil {
		return 0, fmt.Errorf("read interactions dir: %w", err)
	}

	for _, td := range typeDirs {
		if !td.IsDir() {
			continue
		}
		dir := filepath.Join(entityDir, td.Name())

		files, err := os.ReadDir(dir)
		if err != nil {
			return deleted, fmt.Errorf("read interactions dir: %w", err)
		}

		for _, f := range files {
			if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
				continue
			}
			path := filepath.Join(dir, f.Name())

			data, err := os.ReadFile(path)
			if err != nil {
				l.log.Warn("read interaction file", "path", path, "error", err)
				continue
			}
			var rec Record
			if err := json.Unmarshal(data, &rec); err != nil {
				l.log.Warn("decode interaction file", "path", path, "error", err)
				continue
			}

			if rec.Timestamp.Before(cutoff) {
				if err := os.Remove(path); err != nil {
					l.log.Warn("remove interaction file", "path", path, "error", err)
					continue
				}
				deleted++
			}
		}
	}
	return deleted, nil
}
