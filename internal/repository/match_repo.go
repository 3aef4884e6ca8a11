package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jaymatch/server/internal/db"
)

// CanonicalPair normalizes an unordered user pair to (lower, higher).
// Total and deterministic; every pair lookup and write in the system goes
// through it so {A,B} and {B,A} always hit the same row.
func CanonicalPair(a, b uint64) (uint64, uint64) {
	if a < b {
		return a, b
	}
	return b, a
}

// MatchRepository provides data access for the Match relation.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// Create inserts the canonical row for {a,b} with the current timestamp.
//
// Behavior:
//   - If the pair is not yet matched, a row is inserted and created=true.
//   - If the row already exists the insert is a no-op and the existing row
//     is returned with created=false. Re-sending a match request is safe.
func (r *MatchRepository) Create(ctx context.Context, a, b uint64) (*db.Match, bool, error) {
	lo, hi := CanonicalPair(a, b)
	match := db.Match{
		UserID:        lo,
		MatchedUserID: hi,
		Timestamp:     time.Now().UnixMilli(),
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "matched_user_id"}},
			DoNothing: true,
		}).
		Create(&match)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		if err := r.db.WithContext(ctx).
			Where("user_id = ? AND matched_user_id = ?", lo, hi).
			First(&match).Error; err != nil {
			return nil, false, err
		}
		return &match, false, nil
	}
	return &match, true, nil
}

// Exists reports whether a match row exists for the canonical pair {a,b}.
func (r *MatchRepository) Exists(ctx context.Context, a, b uint64) (bool, error) {
	lo, hi := CanonicalPair(a, b)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("user_id = ? AND matched_user_id = ?", lo, hi).
		Count(&count).Error
	return count > 0, err
}

// Delete removes the canonical row for {a,b}. Returns found=false when no
// row existed; callers that only want "ensure absence" ignore it.
func (r *MatchRepository) Delete(ctx context.Context, a, b uint64) (bool, error) {
	lo, hi := CanonicalPair(a, b)
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND matched_user_id = ?", lo, hi).
		Delete(&db.Match{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListForUser returns every match involving userID, normalized so that
// MatchedUserID always holds the peer, newest first.
func (r *MatchRepository) ListForUser(ctx context.Context, userID uint64) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Table("matches").
		Select("? AS user_id, CASE WHEN user_id = ? THEN matched_user_id ELSE user_id END AS matched_user_id, timestamp", userID, userID).
		Where("user_id = ? OR matched_user_id = ?", userID, userID).
		Order("timestamp DESC").
		Scan(&matches).Error
	return matches, err
}
