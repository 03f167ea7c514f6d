// Package analyze computes frequency-based statistics over plain text:
// keywords, a topic label, word count and reading time.
package analyze

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gaurav-prasanna/contentlens/core"
	"github.com/gaurav-prasanna/contentlens/core/config"
)

var _ core.Analyzer = (*Analyzer)(nil)

type topic struct {
	name     string
	keywords []string // lower-cased
}

// Analyzer scores text against fixed vocabulary tables. It is safe for
// concurrent use.
type Analyzer struct {
	stopwords      map[string]struct{}
	maxKeywords    int
	topics         []topic
	unknownTopic   string
	wordsPerMinute int
}

// New builds an Analyzer from the vocabulary tables.
func New(t config.Tables) *Analyzer {
	a := &Analyzer{
		stopwords:      make(map[string]struct{}, len(t.Stopwords)),
		maxKeywords:    t.MaxKeywords,
		unknownTopic:   t.UnknownTopic,
		wordsPerMinute: t.WordsPerMinute,
	}
	for _, w := range t.Stopwords {
		a.stopwords[lower(w)] = struct{}{}
	}
	for _, tp := range t.Topics {
		kw := make([]string, 0, len(tp.Keywords))
		for _, k := range tp.Keywords {
			if k != "" {
				kw = append(kw, lower(k))
			}
		}
		a.topics = append(a.topics, topic{name: tp.Name, keywords: kw})
	}
	if a.wordsPerMinute <= 0 {
		a.wordsPerMinute = 200
	}
	return a
}

// Analyze returns the statistics of text. Blank text yields a zeroed result
// with the unknown topic.
func (a *Analyzer) Analyze(text string) core.AnalysisResult {
	if strings.TrimSpace(text) == "" {
		return core.AnalysisResult{Keywords: []string{}, Topic: a.unknownTopic}
	}
	words := a.WordCount(text)
	return core.AnalysisResult{
		Keywords:    a.Keywords(text),
		Topic:       a.Topic(text),
		WordCount:   words,
		ReadingTime: a.ReadingTime(words),
	}
}

// Keywords returns up to the configured number of most frequent
// whitespace-delimited tokens, lower-cased. Stopwords and tokens of at most
// one byte are skipped, so a lone ASCII letter is dropped while a single CJK
// character is kept. Ties keep first-occurrence order.
func (a *Analyzer) Keywords(text string) []string {
	counts := make(map[string]int)
	var order []string
	for _, tok := range strings.Fields(lower(text)) {
		if len(tok) <= 1 {
			continue
		}
		if _, stop := a.stopwords[tok]; stop {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > a.maxKeywords {
		order = order[:a.maxKeywords]
	}
	return slices.Clip(append([]string{}, order...))
}

// Topic returns the category whose keywords occur most often in text,
// matched case-insensitively as substrings. Ties go to the category listed
// first; a best score of zero yields the unknown topic.
func (a *Analyzer) Topic(text string) string {
	haystack := lower(text)
	best, bestScore := a.unknownTopic, 0
	for _, tp := range a.topics {
		score := 0
		for _, k := range tp.keywords {
			score += strings.Count(haystack, k)
		}
		if score > bestScore {
			best, bestScore = tp.name, score
		}
	}
	return best
}

// WordCount returns the number of whitespace-delimited tokens in text.
func (a *Analyzer) WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime returns the minutes needed to read words, rounded up.
func (a *Analyzer) ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + a.wordsPerMinute - 1) / a.wordsPerMinute
}

// lower folds s with Unicode lower-casing rules. Casers keep state, so a
// fresh one is used per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
