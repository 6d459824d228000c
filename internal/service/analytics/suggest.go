package analytics

import (
	"sort"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
	"github.com/qiwenzhou/mytime-backend/internal/service/analytics/textmatch"
)

const (
	// suggestionThreshold is the minimum similarity between an orphan
	// entry's tokens and a cluster's keywords for a candidate match.
	suggestionThreshold = 0.2

	defaultSuggestionLimit = 10
)

// FindUnlinkedSuggestions scores goal-less eligible entries against each
// cluster's keyword set and proposes the best link per entry. A cluster is a
// candidate only when similarity exceeds the threshold AND at least one
// entry token appears verbatim among the keywords; the double condition
// filters weak false positives. Results are sorted by confidence descending
// and truncated to limit (default 10).
func FindUnlinkedSuggestions(entries []domain.TimeEntry, clusters []domain.GoalCluster, limit int) []domain.UnlinkedEventSuggestion {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	suggestions := []domain.UnlinkedEventSuggestion{}
	for i := range entries {
		e := &entries[i]
		if !e.Eligible() || e.GoalID != nil {
			continue
		}

		tokens := textmatch.Tokenize(e.Activity)
		if len(tokens) == 0 {
			continue
		}

		best, ok := bestCandidate(tokens, clusters)
		if !ok {
			continue
		}

		suggestions = append(suggestions, domain.UnlinkedEventSuggestion{
			EntryID:         e.ID,
			Activity:        e.Activity,
			Date:            e.StartTime,
			DurationMinutes: e.DurationMinutes(),
			ClusterID:       clusters[best.cluster].ID,
			ClusterName:     clusters[best.cluster].Name,
			Confidence:      best.score,
			Keywords:        best.matched,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

type candidate struct {
	cluster int
	score   float64
	matched []string
}

// bestCandidate returns the highest-scoring cluster for the token set, ties
// broken by cluster iteration order.
func bestCandidate(tokens []string, clusters []domain.GoalCluster) (candidate, bool) {
	best := candidate{cluster: -1}
	for ci := range clusters {
		keywords := clusters[ci].Keywords
		score := textmatch.Jaccard(tokens, keywords)
		if score <= suggestionThreshold {
			continue
		}

		matched := verbatimMatches(tokens, keywords)
		if len(matched) == 0 {
			continue
		}

		if score > best.score {
			best = candidate{cluster: ci, score: score, matched: matched}
		}
	}
	return best, best.cluster >= 0
}

// verbatimMatches returns the entry tokens that appear exactly in the
// keyword list, preserving token order.
func verbatimMatches(tokens, keywords []string) []string {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[kw] = struct{}{}
	}
	var matched []string
	for _, tok := range tokens {
		if _, ok := set[tok]; ok {
			matched = append(matched, tok)
		}
	}
	return matched
}
