package state

import (
	"time"
)

// SelectedCover is one cover the user (or a group) picked.
type SelectedCover struct {
	ID         int64
	UserID     int64
	GroupID    int64
	Query      string
	SearchType string
	Title      string
	Artist     string
	Album      string
	CoverURL   string
	Quality    string
	SelectedAt time.Time
}

// AddSelection appends a picked cover to the history. GroupID is 0 for
// private-chat selections.
func (m *Manager) AddSelection(s SelectedCover) error {
	selectedAt := s.SelectedAt
	if selectedAt.IsZero() {
		selectedAt = time.Now()
	}

	_, err := m.db.Exec(`
		INSERT INTO selection_history
			(user_id, group_id, query, search_type, title, artist, album, cover_url, quality, selected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.UserID, s.GroupID, s.Query, s.SearchType, s.Title, s.Artist, s.Album,
		s.CoverURL, s.Quality, selectedAt.Unix())
	return err
}

// UserSelections returns a user's picked covers, newest first.
func (m *Manager) UserSelections(userID int64, limit int) ([]SelectedCover, error) {
	return m.selections(`user_id = ?`, userID, limit)
}

// GroupSelections returns a group's picked covers, newest first.
func (m *Manager) GroupSelections(groupID int64, limit int) ([]SelectedCover, error) {
	return m.selections(`group_id = ?`, groupID, limit)
}

func (m *Manager) selections(where string, id int64, limit int) ([]SelectedCover, error) {
	rows, err := m.db.Query(`
		SELECT id, user_id, group_id, query, search_type, title, artist,
			COALESCE(album, ''), cover_url, COALESCE(quality, ''), selected_at
		FROM selection_history
		WHERE `+where+`
		ORDER BY selected_at DESC, id DESC
		LIMIT ?
	`, id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SelectedCover
	for rows.Next() {
		var s SelectedCover
		var selectedAt int64
		if err := rows.Scan(&s.ID, &s.UserID, &s.GroupID, &s.Query, &s.SearchType,
			&s.Title, &s.Artist, &s.Album, &s.CoverURL, &s.Quality, &selectedAt); err != nil {
			return nil, err
		}
		s.SelectedAt = time.Unix(selectedAt, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

// SelectionCount reports how many covers a user has picked in total.
func (m *Manager) SelectionCount(userID int64) (int, error) {
	var n int
	err := m.db.QueryRow(`
		SELECT COUNT(*) FROM selection_history WHERE user_id = ?
	`, userID).Scan(&n)
	return n, err
}
