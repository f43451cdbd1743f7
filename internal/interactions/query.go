package interactions

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// UserInteractions returns a user's records, newest first. An empty
// typ returns every type. limit and offset paginate the sorted list.
func (l *Log) UserInteractions(userID int64, typ Type, limit, offset int) ([]Record, error) {
	return l.interactions(usersDirName, userID, typ, limit, offset)
}

// GroupInteractions returns a group's records, newest first.
func (l *Log) GroupInteractions(groupID int64, typ Type, limit, offset int) ([]Record, error) {
	return l.interactions(groupsDirName, groupID, typ, limit, offset)
}

func (l *Log) interactions(scope string, id int64, typ Type, limit, offset int) ([]Record, error) {
	records, err := l.loadRecords(scope, id, typ)
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	if offset >= len(records) {
		return nil, nil
	}
	records = records[offset:]
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (l *Log) loadRecords(scope string, id int64, typ Type) ([]Record, error) {
	entityDir := filepath.Join(l.baseDir, scope, fmt.Sprint(id))

	var typeDirs []string
	if typ != "" {
		typeDirs = []string{filepath.Join(entityDir, string(typ))}
	} else {
		entries, err := os.ReadDir(entityDir)
		if os.IsNotExist(err) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read interactions dir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				typeDirs = append(typeDirs, filepath.Join(entityDir, e.Name()))
			}
		}
	}

	var records []Record
	for _, dir := range typeDirs {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read interactions dir: %w", err)
		}

		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
				continue
			}

			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				l.log.Warn("read interaction file", "path", e.Name(), "error", err)
				continue
			}

			var rec Record
			if err := json.Unmarshal(data, &rec); err != nil {
				l.log.Warn("decode interaction file", "path", e.Name(), "error", err)
				continue
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// EntityReport is a per-user or per-group activity rollup computed
// from the stored event files.
type EntityReport struct {
	ID           int64
	Interactions int
	ByType       map[Type]int
	Commands     map[string]int
	Searches     map[string]int
}

// UserReport recomputes a user's activity rollup from disk.
func (l *Log) UserReport(userID int64) (*EntityReport, error) {
	return l.report(usersDirName, userID)
}

// GroupReport recomputes a group's activity rollup from disk.
func (l *Log) GroupReport(groupID int64) (*EntityReport, error) {
	return l.report(groupsDirName, groupID)
}

func (l *Log) report(scope string, id int64) (*EntityReport, error) {
	records, err := l.loadRecords(scope, id, "")
	if err != nil {
		return nil, err
	}

	r := &EntityReport{
		ID:       id,
		ByType:   make(map[Type]int),
		Commands: make(map[string]int),
		Searches: make(map[string]int),
	}

	for i := range records {
		rec := &records[i]
		r.Interactions++
		r.ByType[rec.Type]++

		switch rec.Type {
		case TypeCommand:
			r.Commands[orUnknown(rec.Command)]++
		case TypeSearch:
			r.Searches[orUnknown(rec.SearchType)+":"+orUnknown(rec.Query)]++
		}
	}
	return r, nil
}

// Overview is the aggregate summary shown to admins.
type Overview struct {
	TotalInteractions int
	UserCount         int
	GroupCount        int
	TopCommands       []Counted
	TopSearches       []Counted
}

// Counted is a name with an occurrence count, used in top-N lists.
type Counted struct {
	Name  string
	Count int
}

const topListSize = 10

// Stats returns the aggregate overview with top-10 command and search
// lists, ordered by count descending.
func (l *Log) Stats() Overview {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Overview{
		TotalInteractions: l.stats.TotalInteractions,
		UserCount:         len(l.stats.Users),
		GroupCount:        len(l.stats.Groups),
		TopCommands:       topN(l.stats.Commands, topListSize),
		TopSearches:       topN(l.stats.Searches, topListSize),
	}
}

// UserIDs returns every user id seen in the aggregates, ascending.
func (l *Log) UserIDs() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]int64, 0, len(l.stats.Users))
	for key := range l.stats.Users {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func topN(m map[string]int, n int) []Counted {
	out := make([]Counted, 0, len(m))
	for name, count := range m {
		out = append(out, Counted{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
