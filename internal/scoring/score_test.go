package scoring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sahanr/mangala/internal/scoring"
)

var asOf = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

// dob returns a date of birth for someone of the given age at asOf.
func dob(age int) time.Time {
	return asOf.AddDate(-age, 0, -1)
}

func TestScore_WorkedExample(t *testing.T) {
	requester := scoring.Input{
		DateOfBirth: dob(30),
		Location:    "Colombo",
		Religion:    "buddhist",
		Interests:   []string{"hiking", "art"},
	}
	candidate := scoring.Input{
		DateOfBirth: dob(32),
		Location:    "Colombo",
		Religion:    "buddhist",
		Interests:   []string{"hiking", "music"},
	}

	// interest = 1/2*100 = 50, location = 100, religion = 100, age = 90
	// final with interests priority: 50*0.4 + 90*0.3 + 100*0.15 + 100*0.15 = 77
	res := scoring.Score(candidate, requester, scoring.PriorityInterests, asOf)
	assert.Equal(t, 77, res.Score)
	assert.Equal(t, []string{"hiking"}, res.SharedInterests)
	assert.Equal(t, 32, res.CandidateAge)
}

func TestScore_PriorityShiftsWeights(t *testing.T) {
	requester := scoring.Input{
		DateOfBirth: dob(30),
		Location:    "Colombo",
		Religion:    "buddhist",
		Interests:   []string{"hiking", "art"},
	}
	candidate := scoring.Input{
		DateOfBirth: dob(32),
		Location:    "Colombo",
		Religion:    "buddhist",
		Interests:   []string{"hiking", "music"},
	}

	// age priority: 50*0.3 + 90*0.4 + 100*0.15 + 100*0.15 = 81
	assert.Equal(t, 81, scoring.Score(candidate, requester, scoring.PriorityAge, asOf).Score)
	// location priority: 50*0.3 + 90*0.15 + 100*0.4 + 100*0.15 = 83.5 → 84
	assert.Equal(t, 84, scoring.Score(candidate, requester, scoring.PriorityLocation, asOf).Score)
	// religion priority: same shape as location here
	assert.Equal(t, 84, scoring.Score(candidate, requester, scoring.PriorityReligion, asOf).Score)
}

func TestScore_MissingDataIsNeutral(t *testing.T) {
	requester := scoring.Input{DateOfBirth: dob(30), Interests: []string{"hiking"}}
	candidate := scoring.Input{DateOfBirth: dob(30), Interests: []string{"chess"}}

	// no locations, no religions: both neutral 50; age equal: 100; interests 0
	// final = 0*0.4 + 100*0.3 + 50*0.15 + 50*0.15 = 45
	res := scoring.Score(candidate, requester, scoring.PriorityInterests, asOf)
	assert.Equal(t, 45, res.Score)
	assert.Empty(t, res.SharedInterests)
}

func TestScore_NoRequesterInterestsScoresZeroComponent(t *testing.T) {
	requester := scoring.Input{DateOfBirth: dob(30)}
	candidate := scoring.Input{DateOfBirth: dob(30), Interests: []string{"hiking"}}

	// interests component must be 0 even though the candidate has interests
	// final = 0*0.4 + 100*0.3 + 50*0.15 + 50*0.15 = 45
	res := scoring.Score(candidate, requester, scoring.PriorityInterests, asOf)
	assert.Equal(t, 45, res.Score)
}

func TestScore_AgeDecayFloorsAtZero(t *testing.T) {
	requester := scoring.Input{DateOfBirth: dob(25)}
	candidate := scoring.Input{DateOfBirth: dob(55)}

	// 30-year gap decays past zero and must floor there, not go negative
	// final = 0*0.4 + 0*0.3 + 50*0.15 + 50*0.15 = 15
	res := scoring.Score(candidate, requester, scoring.PriorityInterests, asOf)
	assert.Equal(t, 15, res.Score)
}

func TestScore_BoundsHold(t *testing.T) {
	inputs := []scoring.Input{
		{},
		{DateOfBirth: dob(20), Location: "Kandy", Religion: "hindu", Interests: []string{"a", "b", "c"}},
		{DateOfBirth: dob(80), Location: "Greater Colombo", Religion: "buddhist", Interests: []string{"a"}},
	}
	for _, requester := range inputs {
		for _, candidate := range inputs {
			for _, p := range []scoring.Priority{
				scoring.PriorityInterests, scoring.PriorityAge,
				scoring.PriorityLocation, scoring.PriorityReligion,
			} {
				res := scoring.Score(candidate, requester, p, asOf)
				assert.GreaterOrEqual(t, res.Score, 0)
				assert.LessOrEqual(t, res.Score, 100)
			}
		}
	}
}

func TestScore_SharedInterestsAreSymmetric(t *testing.T) {
	a := scoring.Input{Interests: []string{"Hiking", "art", "music"}}
	b := scoring.Input{Interests: []string{"hiking", "ART", "chess"}}

	ab := scoring.Score(b, a, scoring.PriorityInterests, asOf)
	ba := scoring.Score(a, b, scoring.PriorityInterests, asOf)
	assert.Equal(t, ab.SharedInterests, ba.SharedInterests)
	assert.Equal(t, []string{"art", "hiking"}, ab.SharedInterests)
}

func TestScore_LocationSubstringMatch(t *testing.T) {
	requester := scoring.Input{DateOfBirth: dob(30), Location: "Colombo"}
	candidate := scoring.Input{DateOfBirth: dob(30), Location: "greater colombo"}

	// substring containment either direction counts as a location match
	// final = 0*0.4 + 100*0.3 + 100*0.15 + 50*0.15 = 52.5 → 53 (rounded)
	res := scoring.Score(candidate, requester, scoring.PriorityInterests, asOf)
	assert.Equal(t, 53, res.Score)
}

func TestParsePriority(t *testing.T) {
	assert.Equal(t, scoring.PriorityInterests, scoring.ParsePriority(""))
	assert.Equal(t, scoring.PriorityInterests, scoring.ParsePriority("bogus"))
	assert.Equal(t, scoring.PriorityAge, scoring.ParsePriority("age"))
	assert.Equal(t, scoring.PriorityLocation, scoring.ParsePriority(" Location "))
	assert.Equal(t, scoring.PriorityReligion, scoring.ParsePriority("religion"))
}

func TestAgeAt(t *testing.T) {
	born := time.Date(1995, time.June, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 29, scoring.AgeAt(born, asOf)) // birthday tomorrow
	assert.Equal(t, 30, scoring.AgeAt(born, asOf.AddDate(0, 0, 1)))
	assert.Equal(t, 0, scoring.AgeAt(time.Time{}, asOf))
}
