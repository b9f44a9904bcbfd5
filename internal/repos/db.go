package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	applog "gamestore/internal/log"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: keeps :memory: databases shared and serializes sqlite writers.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	// Seed demo catalog if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog
CREATE TABLE IF NOT EXISTS games(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  price TEXT NOT NULL,                 -- exact decimal string
  image_data BLOB,
  image_mime_type TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_games_category ON games(category);

-- Session carts
CREATE TABLE IF NOT EXISTS cart_items(
  session_id TEXT NOT NULL,
  game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  position INTEGER NOT NULL,
  updated_at TEXT,
  PRIMARY KEY (session_id, game_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  line1 TEXT NOT NULL,
  line2 TEXT NOT NULL DEFAULT '',
  line3 TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  zip TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL,
  gift_wrap INTEGER NOT NULL DEFAULT 0,
  total TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PLACED',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  game_id INTEGER NOT NULL,            -- no FK: games may be deleted later
  name TEXT NOT NULL,
  qty INTEGER NOT NULL,
  price TEXT NOT NULL,
  PRIMARY KEY (order_id, game_id)
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM games`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Logger().Info("[seed] inserting demo games")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO games(name,description,category,price) VALUES
	  ('Chess','The classic strategy game for two players','Board','29.99'),
	  ('Go','Capture territory on a 19x19 board','Board','34.50'),
	  ('Ticket to Ride','Build train routes across the map','Board','44.95'),
	  ('Rubik''s Cube','Twist the faces until every side is one colour','Puzzle','12.00'),
	  ('Jigsaw 1000','A 1000 piece landscape jigsaw','Puzzle','18.75'),
	  ('Space Shooter','Arcade shoot-em-up for the retro console','Video','49.99')`); err != nil {
		return err
	}
	return tx.Commit()
}

// SeedAdmin makes sure an ADMIN user with the given credentials exists. Idempotent.
func SeedAdmin(ctx context.Context, db *sqlx.DB, username, password string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO users(id,username,password_hash,role)
		VALUES(?,?,?,'ADMIN')
		ON CONFLICT(username) DO NOTHING
	`, "u-"+username, username, string(h))
	return err
}
