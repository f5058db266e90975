package settings

import "database/sql"

// SettingsSchema mirrors the remote store's portfolio_settings table, a
// key/value store whose only well-known key today is the opening balance.
const SettingsSchema = `
CREATE TABLE IF NOT EXISTS portfolio_settings (
    key TEXT PRIMARY KEY,
    value REAL NOT NULL
);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(SettingsSchema)
	return err
}
