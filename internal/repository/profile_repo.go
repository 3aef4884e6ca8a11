package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jaymatch/server/internal/db"
)

// ProfileRepository provides data access for profiles.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uint64) (*db.Profile, error) {
	var profile db.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*db.Profile, error) {
	var profile db.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *db.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// Update writes the full row back (read-modify-write upsert semantics
// live in the service layer; last writer wins, no concurrency token).
func (r *ProfileRepository) Update(ctx context.Context, profile *db.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// SampleCandidates draws up to n profiles in random order, excluding the
// requester and anyone already matched with them. The random order is the
// discovery mechanism: it must not be deterministic or id-sorted. The
// sample bound keeps query cost independent of population size.
func (r *ProfileRepository) SampleCandidates(ctx context.Context, requesterID uint64, n int) ([]db.Profile, error) {
	var profiles []db.Profile
	err := r.db.WithContext(ctx).
		Where("id <> ?", requesterID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM matches m
				WHERE (m.user_id = ? AND m.matched_user_id = profiles.id)
				   OR (m.user_id = profiles.id AND m.matched_user_id = ?)
			)`, requesterID, requesterID).
		Order(r.randomFn()).
		Limit(n).
		Find(&profiles).Error
	return profiles, err
}

// randomFn returns the dialect's random ordering function.
func (r *ProfileRepository) randomFn() string {
	if r.db.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}

// DeleteCascade removes a user's messages, matches, preferences, and
// profile as one atomic unit. Partial deletion must never be observable.
func (r *ProfileRepository) DeleteCascade(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).
			Delete(&db.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR matched_user_id = ?", userID, userID).
			Delete(&db.Match{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).
			Delete(&db.Preference{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&db.Profile{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
