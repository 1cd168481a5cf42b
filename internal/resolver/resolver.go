// Package resolver matches free-text names from chat against the user's
// Splitwise rosters. Matching is fuzzy: "jon", "John", or "jsmith99" should
// all land on John Smith as long as they score above the threshold.
package resolver

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"splitbridge/internal/models"
)

// DefaultThreshold is the minimum score for a roster entry to count as a
// match.
const DefaultThreshold = 0.6

const (
	// substringScore is awarded when the query appears inside the target
	// name, regardless of character-level similarity.
	substringScore = 0.85

	// exactScore is awarded when the query equals a first or last name.
	exactScore = 1.0

	// suggestionFactor scales the threshold down for near-miss candidates.
	suggestionFactor = 0.8

	// maxCandidates caps the near-miss list on a failed match.
	maxCandidates = 3
)

// Match is the outcome of resolving one name against the friends roster.
type Match struct {
	// Friend is the winning roster entry; nil when nothing scored at or
	// above the threshold.
	Friend *models.Friend

	// Score is the winning score. Zero when the match failed.
	Score float64

	// Candidates holds up to three near misses, best first. Populated
	// only when the match failed.
	Candidates []models.Friend
}

// Matched reports whether resolution succeeded.
func (m Match) Matched() bool { return m.Friend != nil }

// GroupMatch is the outcome of resolving a group name. Groups carry no
// candidate list; callers list the user's groups instead.
type GroupMatch struct {
	Group *models.Group
	Score float64
}

// Matched reports whether resolution succeeded.
func (m GroupMatch) Matched() bool { return m.Group != nil }

// Resolver scores roster entries against conversational name fragments.
// Construct with New; the zero value rejects everything.
type Resolver struct {
	threshold float64
}

// New returns a Resolver with the given match threshold. Thresholds
// outside (0, 1] fall back to DefaultThreshold.
func New(threshold float64) *Resolver {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Resolver{threshold: threshold}
}

// ResolveFriend finds the friend best matching a spoken name.
//
// Every friend is scored as the max over similarity to the full name, the
// first name, the last name, and the email local-part, with two boosts: a
// substring or prefix hit inside the full name scores at least 0.85, and a
// query equal to the first or last name scores 1.0. The best friend wins
// when it reaches the threshold; on failure, Candidates carries up to
// three entries scoring within 80% of the threshold so the caller can
// suggest corrections.
func (r *Resolver) ResolveFriend(query string, friends []models.Friend) Match {
	q := normalize(query)
	if q == "" || len(friends) == 0 {
		return Match{}
	}

	type scored struct {
		friend models.Friend
		score  float64
	}
	scores := make([]scored, 0, len(friends))
	for _, f := range friends {
		scores = append(scores, scored{friend: f, score: r.scoreFriend(q, f)})
	}
	// Stable sort keeps the earliest roster entry on ties.
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if best := scores[0]; best.score >= r.threshold {
		return Match{Friend: &best.friend, Score: best.score}
	}

	var candidates []models.Friend
	for _, s := range scores {
		if len(candidates) == maxCandidates {
			break
		}
		if s.score >= r.threshold*suggestionFactor {
			candidates = append(candidates, s.friend)
		}
	}
	return Match{Candidates: candidates}
}

// ResolveGroup finds the group best matching a spoken name. Groups have a
// single projection, their display name, plus the substring boost.
func (r *Resolver) ResolveGroup(query string, groups []models.Group) GroupMatch {
	q := normalize(query)
	if q == "" || len(groups) == 0 {
		return GroupMatch{}
	}

	var (
		best      *models.Group
		bestScore float64
	)
	for i := range groups {
		name := strings.ToLower(groups[i].Name)
		score := similarity(q, name)
		if strings.Contains(name, q) {
			score = max(score, substringScore)
		}
		// Strictly greater, so the earliest group wins ties.
		if score > bestScore {
			best = &groups[i]
			bestScore = score
		}
	}
	if bestScore >= r.threshold {
		return GroupMatch{Group: best, Score: bestScore}
	}
	return GroupMatch{}
}

// Score reports the query's similarity to a single friend, using the same
// projections and boosts as ResolveFriend. Useful for showing near-miss
// scores in diagnostics.
func (r *Resolver) Score(query string, f models.Friend) float64 {
	q := normalize(query)
	if q == "" {
		return 0
	}
	return r.scoreFriend(q, f)
}

// scoreFriend returns the best score across all projections of a friend.
func (r *Resolver) scoreFriend(q string, f models.Friend) float64 {
	first := strings.ToLower(strings.TrimSpace(f.FirstName))
	last := strings.ToLower(strings.TrimSpace(f.LastName))
	full := strings.ToLower(f.FullName())

	score := similarity(q, full)
	score = max(score, similarity(q, first))
	if last != "" {
		score = max(score, similarity(q, last))
	}
	if f.Email != "" {
		local, _, _ := strings.Cut(strings.ToLower(f.Email), "@")
		score = max(score, similarity(q, local))
	}
	if strings.Contains(full, q) {
		score = max(score, substringScore)
	}
	if q == first || (last != "" && q == last) {
		score = exactScore
	}
	return score
}

// similarity is a character-level sequence ratio in [0, 1]: symmetric, 1.0
// for identical strings, 0.0 for fully disjoint ones.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
