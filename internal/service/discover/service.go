package discover

import (
	"context"

	"github.com/jaymatch/server/internal/app"
	"github.com/jaymatch/server/internal/db"
	"github.com/jaymatch/server/internal/repository"
)

const (
	// sampleSize bounds the random draw so queue cost stays independent
	// of population size while tolerating a filter pass-rate down to 20%.
	sampleSize = 100
	// queueSize is the maximum number of candidates returned per request.
	queueSize = 20
)

// Service implements candidate discovery: a randomized, preference-
// filtered queue of unmatched profiles, plus preference management.
type Service struct {
	appCtx      *app.AppContext
	profiles    *repository.ProfileRepository
	preferences *repository.PreferenceRepository
}

// NewService creates the discover service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		profiles:    repository.NewProfileRepository(appCtx.DB),
		preferences: repository.NewPreferenceRepository(appCtx.DB),
	}
}

// Queue returns up to 20 candidate profiles for the requester.
//
// Two-stage sampling: draw up to 100 profiles in random order (excluding
// the requester and existing matches), filter each against the
// requester's preference set, keep the first 20 survivors in sampled
// order. No re-sampling when the filter thins the draw below 20.
func (s *Service) Queue(ctx context.Context, requesterID uint64) ([]db.Profile, error) {
	prefs, err := s.preferences.Get(ctx, requesterID)
	if err != nil {
		s.appCtx.Logger.Error("preference load failed", "user_id", requesterID, "err", err)
		return nil, err
	}

	candidates, err := s.profiles.SampleCandidates(ctx, requesterID, sampleSize)
	if err != nil {
		s.appCtx.Logger.Error("candidate sample failed", "user_id", requesterID, "err", err)
		return nil, err
	}

	queue := make([]db.Profile, 0, queueSize)
	for i := range candidates {
		if !Passes(&candidates[i], prefs) {
			continue
		}
		queue = append(queue, candidates[i])
		if len(queue) == queueSize {
			break
		}
	}

	s.appCtx.Logger.Debug("queue generated", "user_id", requesterID, "sampled", len(candidates), "returned", len(queue))
	return queue, nil
}

// GetPreferences returns the stored set, or an empty set carrying the
// user id when none exists (absence is valid and means "no filtering").
func (s *Service) GetPreferences(ctx context.Context, userID uint64) (*db.Preference, error) {
	prefs, err := s.preferences.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return &db.Preference{UserID: userID}, nil
	}
	return prefs, nil
}

// PutPreferences replaces the user's preference set wholesale.
func (s *Service) PutPreferences(ctx context.Context, prefs *db.Preference) error {
	return s.preferences.Put(ctx, prefs)
}
