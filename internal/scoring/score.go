// Package scoring computes compatibility scores between two profiles.
// It is pure: no persistence, no clock access beyond the asOf argument.
package scoring

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Priority selects which scoring dimension receives the heaviest weight.
type Priority string

const (
	PriorityInterests Priority = "interests"
	PriorityAge       Priority = "age"
	PriorityLocation  Priority = "location"
	PriorityReligion  Priority = "religion"
)

// ParsePriority normalizes a raw priority string, falling back to the
// default (interests) for anything unrecognized or empty.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityAge:
		return PriorityAge
	case PriorityLocation:
		return PriorityLocation
	case PriorityReligion:
		return PriorityReligion
	default:
		return PriorityInterests
	}
}

// weights holds the per-priority weight vector in the order:
// interest, age, location, religion.
var weights = map[Priority][4]float64{
	PriorityInterests: {0.40, 0.30, 0.15, 0.15},
	PriorityAge:       {0.30, 0.40, 0.15, 0.15},
	PriorityLocation:  {0.30, 0.15, 0.40, 0.15},
	PriorityReligion:  {0.30, 0.15, 0.15, 0.40},
}

// Input carries the profile attributes the engine consumes.
type Input struct {
	DateOfBirth time.Time
	Location    string
	Religion    string
	Interests   []string
}

// Result is the scored comparison of a candidate against a requester.
type Result struct {
	// Score is the weighted final score, rounded to the nearest integer.
	Score int
	// SharedInterests lists the interest tags common to both profiles,
	// lowercased and sorted, so the set is identical for (A,B) and (B,A).
	SharedInterests []string
	// CandidateAge is the candidate's age in whole years as of asOf.
	CandidateAge int
}

// Score computes the compatibility of candidate against requester.
//
// Each component score lies in [0,100]; missing location or religion scores
// the neutral 50, never 0. The final score is the weighted sum under the
// priority's weight vector and therefore also lies in [0,100].
func Score(candidate, requester Input, priority Priority, asOf time.Time) Result {
	shared := sharedInterests(requester.Interests, candidate.Interests)

	interestScore := 0.0
	if n := maxLen(requester.Interests, candidate.Interests); len(requester.Interests) > 0 && n > 0 {
		interestScore = float64(len(shared)) / float64(n) * 100
	}

	locationScore := 50.0
	if requester.Location != "" && candidate.Location != "" {
		reqLoc := strings.ToLower(requester.Location)
		candLoc := strings.ToLower(candidate.Location)
		if strings.Contains(candLoc, reqLoc) || strings.Contains(reqLoc, candLoc) {
			locationScore = 100
		}
	}

	religionScore := 50.0
	if requester.Religion != "" && candidate.Religion != "" &&
		strings.EqualFold(requester.Religion, candidate.Religion) {
		religionScore = 100
	}

	requesterAge := AgeAt(requester.DateOfBirth, asOf)
	candidateAge := AgeAt(candidate.DateOfBirth, asOf)
	ageScore := math.Max(0, 100-5*math.Abs(float64(requesterAge-candidateAge)))

	w := weights[priority]
	final := interestScore*w[0] + ageScore*w[1] + locationScore*w[2] + religionScore*w[3]

	return Result{
		Score:           int(math.Round(final)),
		SharedInterests: shared,
		CandidateAge:    candidateAge,
	}
}

// AgeAt returns the age in whole calendar years at the given instant.
// A zero date of birth yields 0.
func AgeAt(dob, asOf time.Time) int {
	if dob.IsZero() {
		return 0
	}
	years := asOf.Year() - dob.Year()
	// not yet had the birthday this year
	if asOf.Month() < dob.Month() ||
		(asOf.Month() == dob.Month() && asOf.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// sharedInterests intersects two tag lists case-insensitively and returns
// the shared tags lowercased and sorted.
func sharedInterests(a, b []string) []string {
	seen := make(map[string]struct{}, len(a))
	for _, tag := range a {
		if t := normalizeTag(tag); t != "" {
			seen[t] = struct{}{}
		}
	}

	sharedSet := make(map[string]struct{})
	for _, tag := range b {
		t := normalizeTag(tag)
		if _, ok := seen[t]; ok && t != "" {
			sharedSet[t] = struct{}{}
		}
	}

	shared := make([]string, 0, len(sharedSet))
	for t := range sharedSet {
		shared = append(shared, t)
	}
	sort.Strings(shared)
	return shared
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func maxLen(a, b []string) int {
	if len(a) > len(b) {
		return len(a)
	}
	return len(b)
}
