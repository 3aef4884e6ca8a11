package discover

import (
	"strings"

	"github.com/jaymatch/server/internal/db"
)

// Passes reports whether candidate satisfies every active constraint in
// prefs. Pure function, no side effects.
//
// Rules:
//   - nil prefs means no filtering: everything passes.
//   - Constraints combine with AND; values within a multi-value
//     constraint combine with OR (gender ∈ accepted set).
//   - A candidate missing a field checked by an active constraint fails
//     that constraint. Missing data is non-matching, not a wildcard.
//   - Categorical comparison (gender, year, major) is case-insensitive.
func Passes(candidate *db.Profile, prefs *db.Preference) bool {
	if prefs == nil {
		return true
	}

	if len(prefs.Genders) > 0 {
		if candidate.Gender == nil || !containsFold(prefs.Genders, *candidate.Gender) {
			return false
		}
	}

	if prefs.MinAge != nil {
		if candidate.Age == nil || *candidate.Age < *prefs.MinAge {
			return false
		}
	}
	if prefs.MaxAge != nil {
		if candidate.Age == nil || *candidate.Age > *prefs.MaxAge {
			return false
		}
	}

	if len(prefs.Years) > 0 {
		if candidate.Year == nil || !containsFold(prefs.Years, *candidate.Year) {
			return false
		}
	}

	if len(prefs.Majors) > 0 {
		if candidate.Major == nil || !containsFold(prefs.Majors, *candidate.Major) {
			return false
		}
	}

	if prefs.IsFelon != nil {
		if candidate.IsFelon == nil || *candidate.IsFelon != *prefs.IsFelon {
			return false
		}
	}

	return true
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
