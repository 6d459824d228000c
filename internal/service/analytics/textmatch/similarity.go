package textmatch

import "strings"

// ContainmentScore is the floor applied by SimilarityWithContainment when one
// label contains the other: containment is a strong signal of shared intent.
const ContainmentScore = 0.6

// Jaccard returns |A∩B| / |A∪B| for two token lists treated as sets.
// It returns 0 when either set is empty. Symmetric; 1 for equal non-empty sets.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, tok := range a {
		setA[tok] = struct{}{}
	}

	union := len(setA)
	inter := 0
	seenB := make(map[string]struct{}, len(b))
	for _, tok := range b {
		if _, dup := seenB[tok]; dup {
			continue
		}
		seenB[tok] = struct{}{}
		if _, ok := setA[tok]; ok {
			inter++
		} else {
			union++
		}
	}

	return float64(inter) / float64(union)
}

// Similarity tokenizes both labels and returns their Jaccard index.
func Similarity(a, b string) float64 {
	return Jaccard(Tokenize(a), Tokenize(b))
}

// SimilarityWithContainment is Similarity with a containment boost: when the
// lower-cased labels are in a substring relationship the result is at least
// ContainmentScore ("写论文" vs "写论文第三章").
func SimilarityWithContainment(a, b string) float64 {
	sim := Similarity(a, b)
	if ContainsFold(a, b) && sim < ContainmentScore {
		return ContainmentScore
	}
	return sim
}

// ContainsFold reports whether either non-empty lower-cased label is a
// substring of the other.
func ContainsFold(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// SignificantOverlap reports whether the two token lists share at least one
// token of rune length ≥ 2. Guards against spurious matches on single
// generic characters.
func SignificantOverlap(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, tok := range a {
		setA[tok] = struct{}{}
	}
	for _, tok := range b {
		if _, ok := setA[tok]; ok && len([]rune(tok)) >= 2 {
			return true
		}
	}
	return false
}
