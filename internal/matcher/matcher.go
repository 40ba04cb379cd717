// Package matcher selects the best Q&A rule for a visitor utterance by
// case-insensitive substring search over rule keywords.
//
// The package does no I/O and no logging. A Matcher is immutable after New
// and safe for concurrent use.
//
// Scoring: every keyword contained in the utterance scores its length in
// runes. Rules are visited in the order given and keywords in their stored
// order; the best candidate is replaced only on a strictly higher score, so
// ties go to the earliest rule and keyword.
package matcher

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Rule is the matcher's view of an active Q&A rule.
type Rule struct {
	ID       uint
	Keywords []string
	Answer   string
}

// Match describes the winning rule.
type Match struct {
	RuleID  uint
	Answer  string
	Keyword string // folded keyword that won
	Score   int
}

// Option configures a Matcher.
type Option func(*config)

type config struct {
	locale language.Tag
}

// WithLocale selects language-specific case folding (e.g. Turkish dotted I).
func WithLocale(tag language.Tag) Option {
	return func(c *config) { c.locale = tag }
}

type compiled struct {
	id       uint
	answer   string
	keywords []keyword
}

type keyword struct {
	text  string
	runes int
}

// Matcher holds pre-folded rules.
type Matcher struct {
	locale language.Tag
	rules  []compiled
}

// New folds the keywords of rules once and returns a Matcher. Empty keywords
// are dropped here so they can never match.
func New(rules []Rule, opts ...Option) *Matcher {
	cfg := config{locale: language.Und}
	for _, o := range opts {
		o(&cfg)
	}
	m := &Matcher{locale: cfg.locale, rules: make([]compiled, 0, len(rules))}
	fold := cases.Lower(cfg.locale)
	for _, r := range rules {
		c := compiled{id: r.ID, answer: r.Answer}
		for _, k := range r.Keywords {
			f := foldWith(fold, k)
			if f == "" {
				continue
			}
			c.keywords = append(c.keywords, keyword{text: f, runes: utf8.RuneCountInString(f)})
		}
		m.rules = append(m.rules, c)
	}
	return m
}

// Best returns the highest scoring rule for utterance, or false when no
// keyword of any rule occurs in it.
func (m *Matcher) Best(utterance string) (Match, bool) {
	// Casers keep state between calls, so each lookup gets its own.
	text := foldWith(cases.Lower(m.locale), utterance)
	if text == "" {
		return Match{}, false
	}

	var best Match
	found := false
	for _, r := range m.rules {
		for _, k := range r.keywords {
			if k.runes <= best.Score {
				continue
			}
			if strings.Contains(text, k.text) {
				best = Match{RuleID: r.id, Answer: r.answer, Keyword: k.text, Score: k.runes}
				found = true
			}
		}
	}
	return best, found
}

// Len returns the number of rules the matcher was built from.
func (m *Matcher) Len() int { return len(m.rules) }

func foldWith(c cases.Caser, s string) string {
	return strings.TrimSpace(c.String(norm.NFC.String(s)))
}
