package state

import (
	"database/sql"
	"time"
)

// GetLanguage returns the user's stored language code, or "" when the
// user has never picked one.
func (m *Manager) GetLanguage(userID int64) (string, error) {
	var lang string
	err := m.db.QueryRow(`
		SELECT language FROM user_language WHERE user_id = ?
	`, userID).Scan(&lang)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return lang, nil
}

// SetLanguage stores the user's language choice.
func (m *Manager) SetLanguage(userID int64, language string) error {
	_, err := m.db.Exec(`
		INSERT INTO user_language (user_id, language, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			language = excluded.language,
			updated_at = excluded.updated_at
	`, userID, language, time.Now().Unix())
	return err
}
