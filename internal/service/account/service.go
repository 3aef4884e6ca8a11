package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jaymatch/server/internal/app"
	"github.com/jaymatch/server/internal/db"
	svcErr "github.com/jaymatch/server/internal/errors"
	"github.com/jaymatch/server/internal/repository"
)

// validGenders is the stored form of each accepted gender, keyed by the
// lowercased input. Year and major are accepted as free text.
var validGenders = map[string]string{
	"male":   "Male",
	"female": "Female",
	"other":  "Other",
}

// Service handles accounts and profiles: signup, login, deletion, and
// profile reads/updates. Simple field mapping; the messaging core treats
// profiles as read-only.
type Service struct {
	appCtx   *app.AppContext
	profiles *repository.ProfileRepository
}

// NewService creates the account service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		profiles: repository.NewProfileRepository(appCtx.DB),
	}
}

// Signup creates a profile with a bcrypt-hashed password. The contact
// email must belong to the configured campus domain.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*db.Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if domain := s.appCtx.Config.App.EmailDomain; domain != "" {
		if !strings.HasSuffix(email, "@"+domain) {
			return nil, svcErr.Validation("Email must be a " + domain + " address")
		}
	}
	if password == "" {
		return nil, svcErr.Validation("password must not be empty")
	}

	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, svcErr.Validation("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &db.Profile{
		Email:        email,
		PasswordHash: string(hash),
	}
	if name = strings.TrimSpace(name); name != "" {
		profile.Name = &name
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.appCtx.Logger.Error("profile insert failed", "email", email, "err", err)
		return nil, err
	}

	s.appCtx.Logger.Info("created new user", "user_id", profile.ID, "email", email)
	return profile, nil
}

// Login verifies credentials and returns the matching profile.
func (s *Service) Login(ctx context.Context, email, password string) (*db.Profile, error) {
	profile, err := s.profiles.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.Unauthenticated("User not found")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		s.appCtx.Logger.Info("failed login attempt", "email", email)
		return nil, svcErr.Unauthenticated("Invalid password")
	}

	s.appCtx.Logger.Info("user logged in", "user_id", profile.ID)
	return profile, nil
}

// Delete verifies credentials and removes the account: messages, matches,
// preferences, and the profile go in one transaction.
func (s *Service) Delete(ctx context.Context, email, password string) error {
	profile, err := s.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.profiles.DeleteCascade(ctx, profile.ID); err != nil {
		s.appCtx.Logger.Error("account deletion failed", "user_id", profile.ID, "err", err)
		return err
	}
	s.appCtx.Logger.Info("user permanently deleted", "user_id", profile.ID, "email", profile.Email)
	return nil
}

// ProfileUpdate carries the fields a profile upsert may set. Nil fields
// keep their current value (merge-on-update, last writer wins).
type ProfileUpdate struct {
	Name      *string  `json:"name"`
	Age       *int     `json:"age"`
	Major     *string  `json:"major"`
	Year      *string  `json:"year"`
	Bio       *string  `json:"bio"`
	Interests []string `json:"interests"`
	Gender    *string  `json:"gender"`
	IsFelon   *bool    `json:"is_felon"`
}

// GetProfile returns the profile for id.
func (s *Service) GetProfile(ctx context.Context, id uint64) (*db.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

// UpdateProfile reads the current row, overlays the provided fields, and
// writes the merged row back. Gender goes through the allow-list and is
// stored title-cased.
func (s *Service) UpdateProfile(ctx context.Context, id uint64, upd *ProfileUpdate) (*db.Profile, error) {
	if upd.Gender != nil {
		stored, ok := validGenders[strings.ToLower(strings.TrimSpace(*upd.Gender))]
		if !ok {
			return nil, svcErr.Validation("Invalid gender. Allowed: Male, Female, Other")
		}
		upd.Gender = &stored
	}

	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		profile.Name = upd.Name
	}
	if upd.Age != nil {
		profile.Age = upd.Age
	}
	if upd.Major != nil {
		profile.Major = upd.Major
	}
	if upd.Year != nil {
		profile.Year = upd.Year
	}
	if upd.Bio != nil {
		profile.Bio = upd.Bio
	}
	if upd.Interests != nil {
		profile.Interests = upd.Interests
	}
	if upd.Gender != nil {
		profile.Gender = upd.Gender
	}
	if upd.IsFelon != nil {
		profile.IsFelon = upd.IsFelon
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
