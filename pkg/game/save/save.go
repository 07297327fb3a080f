// Package save persists exploration archives in a SQLite database.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mapscope/pkg/minimap/exploration"
)

// DefaultSlot is the slot used when the host has a single save
const DefaultSlot = "default"

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("save store closed")

// ExplorationRecord is the stored form of one map's exploration table
type ExplorationRecord struct {
	ID        uint           `gorm:"primarykey"`
	Slot      string         `gorm:"uniqueIndex:idx_slot_map;not null"`
	MapID     int            `gorm:"uniqueIndex:idx_slot_map;not null"`
	Width     int            `gorm:"not null"`
	Height    int            `gorm:"not null"`
	Runs      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// Store reads and writes exploration archives
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open opens or creates the database at path. An empty path keeps it in memory.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open save database: %w", err)
	}
	if err := db.AutoMigrate(&ExplorationRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate save schema: %w", err)
	}
	if path == "" {
		log.Info().Msg("Using in-memory save database")
	} else {
		log.Info().Str("path", path).Msg("Using save database")
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.db = nil
	return sqlDB.Close()
}

// SaveArchive replaces the slot's contents with every table of the archive
func (s *Store) SaveArchive(slot string, a *exploration.Archive) error {
	if s.db == nil {
		return ErrClosed
	}
	records := make([]ExplorationRecord, 0, a.Len())
	for _, id := range a.MapIDs() {
		t, _ := a.Table(id)
		runs, err := json.Marshal(t.Runs())
		if err != nil {
			return fmt.Errorf("failed to encode map %d: %w", id, err)
		}
		records = append(records, ExplorationRecord{
			Slot:   slot,
			MapID:  id,
			Width:  t.Width(),
			Height: t.Height(),
			Runs:   datatypes.JSON(runs),
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slot = ?", slot).Delete(&ExplorationRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save slot %q: %w", slot, err)
	}
	s.log.Debug().Str("slot", slot).Int("maps", len(records)).Msg("Saved exploration")
	return nil
}

// LoadArchive restores a slot. Tables whose runs are malformed are dropped
// and logged; the map then starts unexplored.
func (s *Store) LoadArchive(slot string) (*exploration.Archive, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	var records []ExplorationRecord
	if err := s.db.Where("slot = ?", slot).Order("map_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load slot %q: %w", slot, err)
	}

	a := exploration.NewArchive()
	for _, r := range records {
		t, err := decodeRecord(r)
		if err != nil {
			s.log.Warn().Err(err).Int("map", r.MapID).Msg("Discarding exploration table")
			continue
		}
		a.Put(r.MapID, t)
	}
	return a, nil
}

// Slots returns the names of every stored slot
func (s *Store) Slots() ([]string, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	var slots []string
	err := s.db.Model(&ExplorationRecord{}).Distinct("slot").Order("slot").Pluck("slot", &slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func decodeRecord(r ExplorationRecord) (*exploration.Table, error) {
	var runs []int
	if err := json.Unmarshal(r.Runs, &runs); err != nil {
		return nil, fmt.Errorf("%w: %v", exploration.ErrMalformedRuns, err)
	}
	return exploration.FromRuns(r.Width, r.Height, runs)
}
