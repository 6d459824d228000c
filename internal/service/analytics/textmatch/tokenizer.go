// Package textmatch implements the token-set similarity primitives used by
// goal clustering and unlinked-entry matching. It is deliberately not NLP:
// no stemming, no language models, only normalized token overlap.
package textmatch

import (
	"strings"
	"unicode"
)

// stopWords are function words in the two supported languages plus generic
// planning verbs. They carry no intent and would otherwise dominate overlap
// between unrelated goals ("want to read" vs "want to run").
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		// English function words
		"a", "an", "the", "and", "or", "but", "to", "of", "in", "on", "at",
		"for", "with", "is", "are", "was", "were", "be", "been", "am",
		"do", "does", "did", "will", "would", "can", "could", "should",
		"this", "that", "these", "those", "it", "its", "my", "your", "our",
		"me", "we", "you", "he", "she", "they", "them",
		"so", "not", "no", "as", "from", "by", "about", "into", "some",
		"more", "very", "just", "also", "today", "tomorrow",
		// generic planning verbs
		"want", "wants", "plan", "plans", "planning", "start", "begin",
		"finish", "complete", "continue", "keep", "try", "need", "going",
		"make", "get",
		// Chinese function words and planning verbs
		"的", "了", "和", "与", "在", "是", "我", "你", "他", "她", "它",
		"们", "把", "被", "对", "从", "向", "为", "于", "也", "都", "很",
		"就", "还", "及", "或", "而", "并", "个", "这", "那", "要", "想",
		"开始", "完成", "继续", "准备", "计划", "打算", "今天", "明天",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}

// isSeparator reports whether r splits tokens: whitespace plus a fixed
// punctuation class covering both ASCII and full-width forms.
func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case ',', '.', ';', ':', '!', '?', '(', ')', '[', ']', '{', '}',
		'"', '\'', '`', '~', '@', '#', '$', '%', '^', '&', '*',
		'-', '_', '+', '=', '/', '\\', '|', '<', '>',
		'，', '。', '！', '？', '、', '；', '：', '（', '）',
		'【', '】', '《', '》', '“', '”', '‘', '’', '·', '…', '—':
		return true
	}
	return false
}

func isStopWord(tok string) bool {
	_, ok := stopWords[tok]
	return ok
}

func hasIdeograph(runes []rune) bool {
	for _, r := range runes {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// Tokenize turns a free-text label into a de-duplicated token list.
// Text is lower-cased and split on whitespace and punctuation; single-rune
// tokens and stop words are dropped. Tokens containing ideographic characters
// additionally emit every contiguous 2-rune sub-sequence so that partial
// overlap between multi-character compounds is detectable ("写论文" and
// "论文初稿" share "论文"). The result is deterministic for a given input;
// order is first-seen but only membership matters to callers.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), isSeparator)

	var tokens []string
	seen := map[string]struct{}{}
	add := func(tok string) {
		if isStopWord(tok) {
			return
		}
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	for _, field := range fields {
		runes := []rune(field)
		if len(runes) < 2 {
			continue
		}
		if hasIdeograph(runes) {
			add(field)
			for i := 0; i+2 <= len(runes); i++ {
				add(string(runes[i : i+2]))
			}
			continue
		}
		add(field)
	}
	return tokens
}
