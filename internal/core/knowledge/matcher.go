package knowledge

import (
	"regexp"
	"sort"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

// Tokenize splits text into lower-cased word tokens, discarding anything
// that is not a word character.
func Tokenize(text string) []string {
	var tokens []string
	for _, tok := range nonWord.Split(strings.ToLower(text), -1) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Candidate is the scorable view of a knowledge entry.
type Candidate struct {
	Question string
	Answer   string
	Tags     []string
}

// Score rates how well a candidate matches a free-text query:
//   - +2 when the lower-cased query appears as a substring of the question
//   - +1 per query token present verbatim among the candidate's tokens
//     (question, answer, and tags all contribute tokens)
//   - +0.5 per remaining query token that prefixes any candidate token,
//     counted once per query token
//
// An empty or whitespace-only query scores zero against everything.
func Score(c Candidate, query string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	score := 0.0
	if strings.Contains(strings.ToLower(c.Question), q) {
		score += 2
	}

	candidateTokens := make(map[string]bool)
	for _, tok := range Tokenize(c.Question) {
		candidateTokens[tok] = true
	}
	for _, tok := range Tokenize(c.Answer) {
		candidateTokens[tok] = true
	}
	for _, tag := range c.Tags {
		for _, tok := range Tokenize(tag) {
			candidateTokens[tok] = true
		}
	}

	for _, tok := range Tokenize(q) {
		if candidateTokens[tok] {
			score++
			continue
		}
		for candidate := range candidateTokens {
			if strings.HasPrefix(candidate, tok) {
				score += 0.5
				break
			}
		}
	}

	return score
}

// Match pairs a candidate index with its score.
type Match struct {
	Index int
	Score float64
}

// Rank scores every candidate against the query and returns at most limit
// matches with positive scores, best first. Ties keep the candidates'
// original order (stable sort, no secondary key).
func Rank(candidates []Candidate, query string, limit int) []Match {
	var matches []Match
	for i, c := range candidates {
		if s := Score(c, query); s > 0 {
			matches = append(matches, Match{Index: i, Score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
