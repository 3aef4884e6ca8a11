package match

import (
	"context"

	"github.com/jaymatch/server/internal/app"
	"github.com/jaymatch/server/internal/db"
	svcErr "github.com/jaymatch/server/internal/errors"
	"github.com/jaymatch/server/internal/repository"
)

// Service implements the match ledger API: idempotent create, delete with
// immediate messaging revocation, and per-user listing.
type Service struct {
	appCtx  *app.AppContext
	matches *repository.MatchRepository
}

// NewService creates the match service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:  appCtx,
		matches: repository.NewMatchRepository(appCtx.DB),
	}
}

// Create records the match for {a,b}. Creating an existing match is a
// no-op success, not an error. The existence cache is written through so
// a send immediately after matching needs no DB round trip.
func (s *Service) Create(ctx context.Context, a, b uint64) (*db.Match, bool, error) {
	if a == b {
		return nil, false, svcErr.Validation("cannot match a user with themselves")
	}

	m, created, err := s.matches.Create(ctx, a, b)
	if err != nil {
		s.appCtx.Logger.Error("match create failed", "a", a, "b", b, "err", err)
		return nil, false, err
	}

	_ = s.appCtx.RedisCache.SetMatchExists(ctx, m.UserID, m.MatchedUserID, true)

	if created {
		s.appCtx.Logger.Info("match created", "user_id", m.UserID, "matched_user_id", m.MatchedUserID)
	}
	return m, created, nil
}

// Delete removes the match for {a,b} and revokes messaging for the pair
// by writing the absence through the cache. A missing row still counts as
// success for callers that only want the pair unmatched.
func (s *Service) Delete(ctx context.Context, a, b uint64) (bool, error) {
	found, err := s.matches.Delete(ctx, a, b)
	if err != nil {
		s.appCtx.Logger.Error("match delete failed", "a", a, "b", b, "err", err)
		return false, err
	}

	lo, hi := repository.CanonicalPair(a, b)
	_ = s.appCtx.RedisCache.SetMatchExists(ctx, lo, hi, false)

	if found {
		s.appCtx.Logger.Info("match deleted", "user_id", lo, "matched_user_id", hi)
	}
	return found, nil
}

// List returns every match involving userID with the peer id normalized
// into matched_user_id.
func (s *Service) List(ctx context.Context, userID uint64) ([]db.Match, error) {
	return s.matches.ListForUser(ctx, userID)
}
