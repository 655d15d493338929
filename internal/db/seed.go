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

var seedLocations = []string{"Colombo", "Kandy", "Galle", "Jaffna", ""}
var seedReligions = []string{"buddhist", "hindu", "christian", "muslim"}
var seedInterests = []string{
	"hiking", "art", "music", "cricket", "cooking", "travel",
	"reading", "photography", "yoga", "movies",
}

// SeedTestData resets the database and populates it with demo users,
// profiles, likes, matches, and suggestions.
//
// Behavior:
//  1. Clears all tables.
//  2. Creates 20 active users with hashed passwords and full profiles.
//  3. Generates a spread of likes with ~70% probability, forcing a mutual
//     pair every 3rd edge, and records the resulting matches canonically.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{"messages", "suggestions", "matches", "likes", "profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	for i := 1; i <= 20; i++ {
		user := User{
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Name:         fmt.Sprintf("User %d", i),
			Active:       true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}

		gender := "male"
		if i%2 == 0 {
			gender = "female"
		}
		profile := Profile{
			UserID:      user.ID,
			DateOfBirth: time.Date(1985+r.Intn(15), time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC),
			Gender:      gender,
			CivilStatus: "single",
			Religion:    seedReligions[r.Intn(len(seedReligions))],
			Location:    seedLocations[r.Intn(len(seedLocations))],
			Bio:         fmt.Sprintf("Hello, I am user %d.", i),
			HeightCM:    uint16(150 + r.Intn(45)),
			WeightKG:    uint16(50 + r.Intn(40)),
		}
		profile.SetInterestTags(pickInterests(r))
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}
	}
	log.Println("Seeded 20 users with profiles.")

	var users []User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return err
	}

	counter := 0
	for _, actor := range users {
		for j := 0; j < 6; j++ {
			target := users[r.Intn(len(users))]
			if actor.ID == target.ID {
				continue
			}
			if r.Intn(100) >= 70 && counter%3 != 0 {
				counter++
				continue
			}

			like := Like{FromUserID: actor.ID, ToUserID: target.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("failed to seed like: %w", err)
			}

			// force a mutual pair every 3rd edge
			if counter%3 == 0 {
				back := Like{FromUserID: target.ID, ToUserID: actor.ID}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&back).Error; err != nil {
					return fmt.Errorf("failed to seed reverse like: %w", err)
				}
				a, b := actor.ID, target.ID
				if b < a {
					a, b = b, a
				}
				match := Match{UserAID: a, UserBID: b}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&match).Error; err != nil {
					return fmt.Errorf("failed to seed match: %w", err)
				}
			}
			counter++
		}
	}
	log.Printf("Seeded %d like edges.", counter)

	return nil
}

func pickInterests(r *rand.Rand) []string {
	n := 2 + r.Intn(4)
	perm := r.Perm(len(seedInterests))
	tags := make([]string, 0, n)
	for _, idx := range perm[:n] {
		tags = append(tags, seedInterests[idx])
	}
	return tags
}
