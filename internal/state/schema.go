package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS user_language (
			user_id INTEGER PRIMARY KEY,
			language TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS selection_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			group_id INTEGER NOT NULL DEFAULT 0,
			query TEXT NOT NULL,
			search_type TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT,
			cover_url TEXT NOT NULL,
			quality TEXT,
			selected_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_selection_history_user ON selection_history(user_id, selected_at DESC);
		CREATE INDEX IF NOT EXISTS idx_selection_history_group ON selection_history(group_id, selected_at DESC);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
