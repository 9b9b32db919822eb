package pixelmint

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrUnknownToken is returned when a token identifier has no persisted
	// seed.
	ErrUnknownToken = errors.New("pixelmint: unknown token")

	// ErrTokenExists is returned when a mint reuses an identifier that
	// already has a seed.
	ErrTokenExists = errors.New("pixelmint: token already minted")
)

// TokenDB is the ownership registry's view of minting: one persisted Seed
// per token identifier. Only the seed is stored; metadata is recomputed
// from it on every read.
type TokenDB struct {
	db *sql.DB
}

func NewTokenDB(file string) (*TokenDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS token (id INTEGER PRIMARY KEY NOT NULL, body INTEGER NOT NULL, face INTEGER NOT NULL, eyes INTEGER NOT NULL, mouth INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	return &TokenDB{
		db: db,
	}, nil
}

func (db *TokenDB) Close() error {
	return db.db.Close()
}

// Insert persists the seed for a newly minted token. A token identifier can
// be inserted exactly once.
func (db *TokenDB) Insert(id uint64, seed Seed) error {
	var existing int64
	switch err := db.db.QueryRow("SELECT id FROM token WHERE id = ?", int64(id)).Scan(&existing); err {
	case sql.ErrNoRows:
	case nil:
		return ErrTokenExists
	default:
		return err
	}

	if _, err := db.db.Exec("INSERT INTO token (id, body, face, eyes, mouth) VALUES (?, ?, ?, ?, ?)",
		int64(id), int64(seed.Body), int64(seed.Face), int64(seed.Eyes), int64(seed.Mouth)); err != nil {
		return err
	}

	return nil
}

// Seed returns the persisted seed for a token.
func (db *TokenDB) Seed(id uint64) (Seed, error) {
	var body, face, eyes, mouth int64
	switch err := db.db.QueryRow("SELECT body, face, eyes, mouth FROM token WHERE id = ?", int64(id)).Scan(&body, &face, &eyes, &mouth); err {
	case sql.ErrNoRows:
		return Seed{}, ErrUnknownToken
	case nil:
		return Seed{
			Body:  uint64(body),
			Face:  uint64(face),
			Eyes:  uint64(eyes),
			Mouth: uint64(mouth),
		}, nil
	default:
		return Seed{}, err
	}
}
