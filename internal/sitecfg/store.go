package sitecfg

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmlee-dev/reportdeck/internal/db"
)

// configRowID is the fixed key of the single configuration record.
const configRowID = 1

// Store persists the single SiteConfig record.
type Store struct {
	db *db.DB
}

// NewStore creates a new site configuration store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Fetch loads the configuration record. It returns (nil, nil) when no
// record has been saved yet. The result is always normalized.
func (s *Store) Fetch(ctx context.Context) (*SiteConfig, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT config FROM site_configs WHERE id = ?`, configRowID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching site config: %w", err)
	}

	var cfg SiteConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("parsing site config: %w", err)
	}
	Normalize(&cfg)
	return &cfg, nil
}

// Save writes the whole configuration as a full upsert keyed by the
// constant record id. The record is replaced wholesale, never patched.
func (s *Store) Save(ctx context.Context, cfg *SiteConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling site config: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO site_configs (id, config, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET config = excluded.config, updated_at = excluded.updated_at`,
		configRowID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving site config: %w", err)
	}
	return nil
}

// FetchOrDefault loads the record, falling back to the seeded default
// when none exists.
func (s *Store) FetchOrDefault(ctx context.Context) (*SiteConfig, error) {
	cfg, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return cfg, nil
}
