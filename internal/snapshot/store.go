// Package snapshot moves the whole studio state in and out of the database
// as one JSON document.
package snapshot

import (
	"context"
	"fmt"
	"log"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	batchSize    = 200
	restoredNote = "opening balance from snapshot"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Dump reads every table into one document.
func (s *Store) Dump(ctx context.Context) (*engine.State, error) {
	state := &engine.State{}
	db := s.db.WithContext(ctx)

	if err := db.Order("created_at ASC, id ASC").Find(&state.Users).Error; err != nil {
		return nil, fmt.Errorf("dump users: %w", err)
	}
	if err := db.Order("created_at DESC, id ASC").Find(&state.Sessions).Error; err != nil {
		return nil, fmt.Errorf("dump sessions: %w", err)
	}
	if err := db.Order(`"timestamp" ASC, id ASC`).Find(&state.Attendance).Error; err != nil {
		return nil, fmt.Errorf("dump attendance: %w", err)
	}
	if err := db.Order(`"timestamp" ASC, id ASC`).Find(&state.Payments).Error; err != nil {
		return nil, fmt.Errorf("dump payments: %w", err)
	}
	if err := db.Order("price ASC, name ASC").Find(&state.Packages).Error; err != nil {
		return nil, fmt.Errorf("dump packages: %w", err)
	}
	return state, nil
}

// Restore replaces every table with the contents of state in one transaction.
// The credit ledger restarts with one opening entry per funded trainee.
func (s *Store) Restore(ctx context.Context, state *engine.State) error {
	if err := state.Validate(); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []any{
			&models.LedgerEntry{},
			&models.Attendance{},
			&models.Payment{},
			&models.Session{},
			&models.CreditPackage{},
			&models.User{},
		} {
			if err := tx.Where("1 = 1").Delete(table).Error; err != nil {
				return fmt.Errorf("clear %T: %w", table, err)
			}
		}

		if err := insert(tx, state.Users); err != nil {
			return fmt.Errorf("restore users: %w", err)
		}
		if err := insert(tx, state.Sessions); err != nil {
			return fmt.Errorf("restore sessions: %w", err)
		}
		if err := insert(tx, state.Attendance); err != nil {
			return fmt.Errorf("restore attendance: %w", err)
		}
		if err := insert(tx, state.Payments); err != nil {
			return fmt.Errorf("restore payments: %w", err)
		}
		if err := insert(tx, state.Packages); err != nil {
			return fmt.Errorf("restore packages: %w", err)
		}
		return insert(tx, openingBalances(state.Users))
	})
	if err != nil {
		return err
	}

	log.Printf("[Snapshot] restored %d users, %d sessions, %d attendance records, %d payments",
		len(state.Users), len(state.Sessions), len(state.Attendance), len(state.Payments))
	return nil
}

// Empty reports whether the database holds no users and no sessions.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	var users, sessions int64
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return false, err
	}
	if err := db.Model(&models.Session{}).Count(&sessions).Error; err != nil {
		return false, err
	}
	return users == 0 && sessions == 0, nil
}

func insert[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).CreateInBatches(rows, batchSize).Error
}

func openingBalances(users []models.User) []models.LedgerEntry {
	var entries []models.LedgerEntry
	for _, u := range users {
		if !u.IsTrainee() || u.Credits == 0 {
			continue
		}
		entries = append(entries, models.LedgerEntry{
			TraineeID: u.ID,
			Delta:     u.Credits,
			Balance:   u.Credits,
			Reason:    models.ReasonAdjustment,
			Note:      restoredNote,
		})
	}
	return entries
}
