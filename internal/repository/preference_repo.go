package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jaymatch/server/internal/db"
)

// PreferenceRepository provides data access for preference sets.
type PreferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new repository bound to the given DB connection.
func NewPreferenceRepository(database *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: database}
}

// Get returns the user's preference set, or nil when none is stored.
// Absence is a valid state meaning "no filtering", not an error.
func (r *PreferenceRepository) Get(ctx context.Context, userID uint64) (*db.Preference, error) {
	var pref db.Preference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// Put replaces the user's preference set wholesale (upsert, last writer
// wins). Fields absent from pref clear the corresponding constraint.
func (r *PreferenceRepository) Put(ctx context.Context, pref *db.Preference) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(pref).Error
}
