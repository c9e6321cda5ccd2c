// Package keywords extracts the salient terms of an article set.
package keywords

import (
	"regexp"
	"sort"
	"strings"

	"github.com/TobiSchelling/worldnews/internal/feed"
)

const (
	// minFrequency is the number of distinct articles a term must appear in.
	minFrequency = 2
	// maxKeywords caps the extracted list.
	maxKeywords = 8
)

var wordRe = regexp.MustCompile(`[a-z]{3,}`)

// stopWords are filler terms ignored during extraction.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "has": true, "had": true,
	"have": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "could": true, "should": true, "may": true, "might": true,
	"shall": true, "can": true, "this": true, "that": true, "it": true,
	"its": true, "from": true, "as": true, "not": true, "no": true,
	"so": true, "if": true, "than": true, "then": true, "more": true,
	"also": true, "into": true, "over": true, "after": true, "before": true,
	"about": true, "up": true, "out": true, "new": true, "says": true,
	"said": true, "he": true, "she": true, "they": true, "their": true,
	"his": true, "her": true, "who": true, "what": true, "when": true,
	"where": true, "how": true, "why": true, "all": true, "being": true,
	"some": true, "any": true, "each": true, "which": true, "us": true,
	"we": true, "our": true, "you": true,
}

// Keyword is a salient term and the number of articles mentioning it.
type Keyword struct {
	Term      string
	Frequency int
}

// Extract returns up to 8 terms appearing in at least 2 distinct articles,
// most frequent first. A term is counted at most once per article so a
// single repetitive article cannot dominate. Ties keep first-seen order.
func Extract(articles []feed.Article) []Keyword {
	freq := make(map[string]int)
	var order []string

	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Snippet)
		seen := make(map[string]bool)
		for _, word := range wordRe.FindAllString(text, -1) {
			if stopWords[word] || seen[word] {
				continue
			}
			seen[word] = true
			if freq[word] == 0 {
				order = append(order, word)
			}
			freq[word]++
		}
	}

	var kws []Keyword
	for _, term := range order {
		if freq[term] >= minFrequency {
			kws = append(kws, Keyword{Term: term, Frequency: freq[term]})
		}
	}

	sort.SliceStable(kws, func(i, j int) bool {
		return kws[i].Frequency > kws[j].Frequency
	})

	if len(kws) > maxKeywords {
		kws = kws[:maxKeywords]
	}
	return kws
}

// Terms returns just the keyword terms, in extraction order.
func Terms(kws []Keyword) []string {
	terms := make([]string, len(kws))
	for i, k := range kws {
		terms[i] = k.Term
	}
	return terms
}
