package discover_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaymatch/server/internal/db"
	"github.com/jaymatch/server/internal/service/discover"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func TestPassesNilPreferences(t *testing.T) {
	assert.True(t, discover.Passes(&db.Profile{}, nil))
}

func TestPassesGenderAndAge(t *testing.T) {
	prefs := &db.Preference{
		Genders: []string{"Female"},
		MinAge:  intPtr(21),
		MaxAge:  intPtr(30),
	}

	tests := []struct {
		name      string
		candidate db.Profile
		want      bool
	}{
		{
			name:      "wrong gender",
			candidate: db.Profile{Gender: strPtr("Male"), Age: intPtr(25)},
			want:      false,
		},
		{
			name:      "matching gender within range",
			candidate: db.Profile{Gender: strPtr("Female"), Age: intPtr(23)},
			want:      true,
		},
		{
			name:      "missing age fails an active age constraint",
			candidate: db.Profile{Gender: strPtr("Female")},
			want:      false,
		},
		{
			name:      "below range",
			candidate: db.Profile{Gender: strPtr("Female"), Age: intPtr(19)},
			want:      false,
		},
		{
			name:      "bounds are inclusive",
			candidate: db.Profile{Gender: strPtr("Female"), Age: intPtr(21)},
			want:      true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, discover.Passes(&tc.candidate, prefs))
		})
	}
}

func TestPassesCategoricalIsCaseInsensitive(t *testing.T) {
	prefs := &db.Preference{Majors: []string{"computer science"}}
	candidate := db.Profile{Major: strPtr("Computer Science")}
	assert.True(t, discover.Passes(&candidate, prefs))
}

func TestPassesMultiValueIsDisjunctive(t *testing.T) {
	prefs := &db.Preference{Years: []string{"Junior", "Senior"}}

	assert.True(t, discover.Passes(&db.Profile{Year: strPtr("Senior")}, prefs))
	assert.False(t, discover.Passes(&db.Profile{Year: strPtr("Freshman")}, prefs))
	assert.False(t, discover.Passes(&db.Profile{}, prefs))
}

func TestPassesFelonConstraint(t *testing.T) {
	prefs := &db.Preference{IsFelon: boolPtr(false)}

	assert.True(t, discover.Passes(&db.Profile{IsFelon: boolPtr(false)}, prefs))
	assert.False(t, discover.Passes(&db.Profile{IsFelon: boolPtr(true)}, prefs))
	assert.False(t, discover.Passes(&db.Profile{}, prefs))
}

func TestPassesEmptyPreferenceSet(t *testing.T) {
	// an all-zero set constrains nothing
	assert.True(t, discover.Passes(&db.Profile{}, &db.Preference{UserID: 1}))
}
