package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	seedGenders = []string{"Male", "Female", "Other"}
	seedYears   = []string{"Freshman", "Sophomore", "Junior", "Senior", "Graduate"}
	seedMajors  = []string{
		"Computer Science",
		"Information Technology",
		"Electrical Engineering",
		"Mechanical Engineering",
		"Business",
		"Biology",
		"Psychology",
	}
	seedInterests = []string{"hiking", "music", "basketball", "gaming", "reading", "cooking", "film"}
)

// SeedTestData resets the database and populates it with demo profiles,
// preferences, matches, and a short message thread per match.
//
// Behavior:
//  1. Clears all four tables.
//  2. Creates 20 profiles with demographics drawn from the allow-lists.
//  3. Stores a preference set for roughly half of them.
//  4. Creates ~15 canonical matches and a couple of messages for each.
//
// Compatible with both MySQL and SQLite (sequence reset differs per dialect).
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{"messages", "matches", "preferences", "profiles"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		db.Exec("ALTER TABLE profiles AUTO_INCREMENT = 1")
		db.Exec("ALTER TABLE messages AUTO_INCREMENT = 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'profiles'")
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'messages'")
	}

	log.Println("Cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	for i := 1; i <= 20; i++ {
		name := fmt.Sprintf("Student %d", i)
		age := 18 + r.Intn(8)
		gender := seedGenders[i%2] // alternate Male/Female
		year := seedYears[r.Intn(len(seedYears))]
		major := seedMajors[r.Intn(len(seedMajors))]
		bio := fmt.Sprintf("Hi, I'm %s studying %s.", name, major)
		felon := false

		profile := Profile{
			Email:        fmt.Sprintf("student%d@ku.edu", i),
			PasswordHash: string(hash),
			Name:         &name,
			Age:          &age,
			Gender:       &gender,
			Year:         &year,
			Major:        &major,
			Bio:          &bio,
			Interests:    pickInterests(r),
			IsFelon:      &felon,
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}

		if i%2 == 0 {
			minAge, maxAge := 18, 26
			pref := Preference{
				UserID:  profile.ID,
				Genders: []string{seedGenders[(i+1)%2]},
				MinAge:  &minAge,
				MaxAge:  &maxAge,
			}
			if err := db.Create(&pref).Error; err != nil {
				return fmt.Errorf("failed to seed preference: %w", err)
			}
		}
	}
	log.Println("Seeded 20 profiles.")

	var profiles []Profile
	if err := db.Order("id").Find(&profiles).Error; err != nil {
		return err
	}

	matched := 0
	for i := 0; i < len(profiles) && matched < 15; i++ {
		j := r.Intn(len(profiles))
		if i == j {
			continue
		}
		lo, hi := profiles[i].ID, profiles[j].ID
		if lo > hi {
			lo, hi = hi, lo
		}
		ts := time.Now().UnixMilli() - int64(r.Intn(72))*3600_000

		match := Match{UserID: lo, MatchedUserID: hi, Timestamp: ts}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&match)
		if res.Error != nil {
			return fmt.Errorf("failed to seed match: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			continue
		}
		matched++

		greetings := []string{"hey!", "hi, how's your semester going?"}
		for k, content := range greetings {
			msg := Message{
				SenderID:   lo,
				ReceiverID: hi,
				Content:    content,
				Timestamp:  ts + int64(k+1)*60_000,
			}
			if k%2 == 1 {
				msg.SenderID, msg.ReceiverID = hi, lo
			}
			if err := db.Create(&msg).Error; err != nil {
				return fmt.Errorf("failed to seed message: %w", err)
			}
		}
	}
	log.Printf("Seeded %d matches with messages.", matched)

	return nil
}

func pickInterests(r *rand.Rand) []string {
	n := 2 + r.Intn(3)
	picked := make([]string, 0, n)
	for _, idx := range r.Perm(len(seedInterests))[:n] {
		picked = append(picked, seedInterests[idx])
	}
	return picked
}
