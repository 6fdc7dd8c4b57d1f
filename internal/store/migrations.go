package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Objects table - controllable models and their interaction tuning
		`CREATE TABLE IF NOT EXISTS objects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL CHECK(kind IN ('cube', 'sphere', 'pyramid', 'solar-system')),
			scale_min REAL NOT NULL DEFAULT 0.3,
			scale_max REAL NOT NULL DEFAULT 3,
			position_clamp_x REAL NOT NULL DEFAULT 3,
			position_clamp_y REAL NOT NULL DEFAULT 2,
			rotation_smoothing REAL NOT NULL DEFAULT 0.15,
			position_smoothing REAL NOT NULL DEFAULT 0.15,
			scale_smoothing REAL NOT NULL DEFAULT 0.1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Events table - gesture activation log
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			gesture TEXT NOT NULL,
			object_id TEXT REFERENCES objects(id) ON DELETE SET NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_events_gesture ON events(gesture)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
