package analytics

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
	"github.com/qiwenzhou/mytime-backend/internal/service/analytics/textmatch"
)

const maxClusterKeywords = 10

// ClusterGoals partitions goals into clusters: user rules first (in priority
// order), then automatic similarity clustering over the remainder. Every goal
// ends up in exactly one cluster. The result is ordered by member count
// descending, stable for ties. Deleted goals are skipped.
//
// The function is pure and deterministic: cluster ids are derived from rule
// ids (manual) or member goal ids (automatic), so identical inputs produce
// identical output.
func ClusterGoals(goals []domain.Goal, settings domain.ClusterSettings) []domain.GoalCluster {
	active := make([]domain.Goal, 0, len(goals))
	for _, g := range goals {
		if !g.IsDeleted() {
			active = append(active, g)
		}
	}
	if len(active) == 0 {
		return []domain.GoalCluster{}
	}

	assigned := make([]bool, len(active))

	manual := manualPass(active, settings.Rules, assigned)

	var remaining []domain.Goal
	for i, g := range active {
		if !assigned[i] {
			remaining = append(remaining, g)
		}
	}
	auto := automaticPass(remaining, settings.Sensitivity.Threshold())

	clusters := append(manual, auto...)
	sort.SliceStable(clusters, func(i, j int) bool {
		return len(clusters[i].GoalIDs) > len(clusters[j].GoalIDs)
	})
	return clusters
}

// manualPass assigns goals to user-rule clusters. Rules are evaluated in
// ascending priority; a goal joins the first rule whose keyword appears in
// its name (case-insensitive substring). A rule with no matches produces no
// cluster.
func manualPass(goals []domain.Goal, rules []domain.ClusterRule, assigned []bool) []domain.GoalCluster {
	if len(rules) == 0 {
		return nil
	}

	ordered := make([]domain.ClusterRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	var clusters []domain.GoalCluster
	for _, rule := range ordered {
		var members []domain.Goal
		var memberIDs []uuid.UUID
		for i, g := range goals {
			if assigned[i] {
				continue
			}
			if ruleMatches(rule, g.Name) {
				assigned[i] = true
				members = append(members, g)
				memberIDs = append(memberIDs, g.ID)
			}
		}
		if len(members) == 0 {
			continue
		}
		clusters = append(clusters, domain.GoalCluster{
			ID:       rule.ID,
			Name:     rule.Name,
			Keywords: extractKeywords(members, rule.Keywords),
			GoalIDs:  memberIDs,
			Goals:    members,
			IsManual: true,
		})
	}
	return clusters
}

func ruleMatches(rule domain.ClusterRule, name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range rule.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// automaticPass clusters the remaining goals by pairwise token-set
// similarity with the containment boost, merging via union-find. O(n²) in
// goal count; goal lists are small (tens to low hundreds) so the quadratic
// scan is kept exact rather than approximated.
func automaticPass(goals []domain.Goal, threshold float64) []domain.GoalCluster {
	if len(goals) == 0 {
		return nil
	}

	tokens := make([][]string, len(goals))
	lowers := make([]string, len(goals))
	for i, g := range goals {
		tokens[i] = textmatch.Tokenize(g.Name)
		lowers[i] = strings.ToLower(g.Name)
	}

	uf := newUnionFind(len(goals))
	for i := 0; i < len(goals); i++ {
		for j := i + 1; j < len(goals); j++ {
			sim := textmatch.Jaccard(tokens[i], tokens[j])
			if sim < textmatch.ContainmentScore && textmatch.ContainsFold(lowers[i], lowers[j]) {
				sim = textmatch.ContainmentScore
			}
			if sim >= threshold {
				uf.union(i, j)
			}
		}
	}

	// Collect components preserving first-appearance order for determinism.
	componentOf := map[int]int{}
	var components [][]int
	for i := range goals {
		root := uf.find(i)
		idx, ok := componentOf[root]
		if !ok {
			idx = len(components)
			componentOf[root] = idx
			components = append(components, nil)
		}
		components[idx] = append(components[idx], i)
	}

	clusters := make([]domain.GoalCluster, 0, len(components))
	for _, member := range components {
		members := make([]domain.Goal, len(member))
		memberIDs := make([]uuid.UUID, len(member))
		for k, i := range member {
			members[k] = goals[i]
			memberIDs[k] = goals[i].ID
		}
		clusters = append(clusters, domain.GoalCluster{
			ID:       clusterID(memberIDs),
			Name:     representativeName(members),
			Keywords: extractKeywords(members, nil),
			GoalIDs:  memberIDs,
			Goals:    members,
		})
	}
	return clusters
}

// clusterID derives a stable id from the member goal ids so repeated runs
// over the same snapshot yield identical clusters.
func clusterID(memberIDs []uuid.UUID) uuid.UUID {
	buf := make([]byte, 0, len(memberIDs)*16)
	for _, id := range memberIDs {
		buf = append(buf, id[:]...)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, buf)
}

// tokenCount is the frequency accumulator used for keyword ranking.
// Built in one pass, sorted once.
type tokenCount struct {
	token string
	count int
	seen  int // first-seen order, tie breaker
}

// countTokens tallies how many member goals contain each token.
func countTokens(members []domain.Goal) []tokenCount {
	index := map[string]int{}
	var counts []tokenCount
	for _, g := range members {
		for _, tok := range textmatch.Tokenize(g.Name) {
			i, ok := index[tok]
			if !ok {
				i = len(counts)
				index[tok] = i
				counts = append(counts, tokenCount{token: tok, seen: i})
			}
			counts[i].count++
		}
	}
	return counts
}

// representativeName picks the cluster's display label: among goals whose
// token set contains a highest-frequency token, the shortest name wins;
// with no usable tokens the shortest member name overall is used.
func representativeName(members []domain.Goal) string {
	counts := countTokens(members)

	top := 0
	for _, c := range counts {
		if c.count > top {
			top = c.count
		}
	}

	topTokens := map[string]struct{}{}
	for _, c := range counts {
		if c.count == top && top > 0 {
			topTokens[c.token] = struct{}{}
		}
	}

	best := ""
	for _, g := range members {
		if !containsAnyToken(g.Name, topTokens) {
			continue
		}
		if best == "" || runeLen(g.Name) < runeLen(best) {
			best = g.Name
		}
	}
	if best != "" {
		return best
	}

	// Fallback: shortest member name overall.
	for _, g := range members {
		if best == "" || runeLen(g.Name) < runeLen(best) {
			best = g.Name
		}
	}
	return best
}

func containsAnyToken(name string, tokens map[string]struct{}) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range textmatch.Tokenize(name) {
		if _, ok := tokens[tok]; ok {
			return true
		}
	}
	return false
}

func runeLen(s string) int { return len([]rune(s)) }

// extractKeywords ranks member-name tokens by cross-goal frequency (ties by
// first-seen order) and returns up to maxClusterKeywords of them. For manual
// clusters the rule's own keywords are seeded first.
func extractKeywords(members []domain.Goal, seed []string) []string {
	var keywords []string
	seen := map[string]struct{}{}
	for _, kw := range seed {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	counts := countTokens(members)
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].seen < counts[j].seen
	})

	for _, c := range counts {
		if len(keywords) >= maxClusterKeywords {
			break
		}
		if _, ok := seen[c.token]; ok {
			continue
		}
		seen[c.token] = struct{}{}
		keywords = append(keywords, c.token)
	}
	return keywords
}
