package matcher

import (
	"sync"
	"testing"

	"golang.org/x/text/language"
)

func TestBest_Scenarios(t *testing.T) {
	rules := []Rule{
		{ID: 1, Keywords: []string{"hi", "hello"}, Answer: "A"},
		{ID: 2, Keywords: []string{"hi there"}, Answer: "B"},
		{ID: 3, Keywords: []string{"ROS", "robot"}, Answer: "ROS is great"},
	}
	m := New(rules)

	cases := []struct {
		name      string
		in        string
		wantOK    bool
		wantRule  uint
		wantScore int
	}{
		{"longest keyword wins", "hi there", true, 2, 8},
		{"case insensitive", "I love ros", true, 3, 3},
		{"upper-case utterance", "  HELLO  ", true, 1, 5},
		{"substring inside word", "this is anything", true, 1, 2},
		{"no match", "quantum physics", false, 0, 0},
		{"blank utterance", "   ", false, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.Best(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("Best(%q) ok=%v; want %v", tc.in, ok, tc.wantOK)
			}
			if ok && (got.RuleID != tc.wantRule || got.Score != tc.wantScore) {
				t.Fatalf("Best(%q) = %+v; want rule %d score %d", tc.in, got, tc.wantRule, tc.wantScore)
			}
		})
	}
}

func TestBest_TiesGoToEarliestRuleAndKeyword(t *testing.T) {
	m := New([]Rule{
		{ID: 10, Keywords: []string{"abc", "xyz"}, Answer: "first"},
		{ID: 20, Keywords: []string{"xyz"}, Answer: "second"},
	})
	got, ok := m.Best("xyz abc")
	if !ok || got.RuleID != 10 || got.Keyword != "abc" {
		t.Fatalf("expected first rule and first keyword, got %+v", got)
	}
}

func TestBest_EmptyKeywordsNeverMatch(t *testing.T) {
	m := New([]Rule{{ID: 1, Keywords: []string{"", "   "}, Answer: "never"}})
	if _, ok := m.Best("anything at all"); ok {
		t.Fatalf("empty keywords must not match")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", m.Len())
	}
}

func TestBest_NoRules(t *testing.T) {
	if _, ok := New(nil).Best("hello"); ok {
		t.Fatalf("matcher with no rules must not match")
	}
}

func TestBest_ScoreCountsRunes(t *testing.T) {
	m := New([]Rule{
		{ID: 1, Keywords: []string{"çalış"}, Answer: "tr"},  // 5 runes, 7 bytes
		{ID: 2, Keywords: []string{"abcdef"}, Answer: "en"}, // 6 runes
	})
	got, ok := m.Best("çalışma abcdef")
	if !ok || got.RuleID != 2 || got.Score != 6 {
		t.Fatalf("expected rune-based scoring to pick rule 2, got %+v", got)
	}
}

func TestBest_NFCNormalization(t *testing.T) {
	// keyword precomposed, utterance decomposed (e + combining acute)
	m := New([]Rule{{ID: 1, Keywords: []string{"café"}, Answer: "coffee"}})
	if _, ok := m.Best("a café nearby"); !ok {
		t.Fatalf("decomposed input should match precomposed keyword")
	}
}

func TestWithLocale_TurkishDottedI(t *testing.T) {
	rules := []Rule{{ID: 1, Keywords: []string{"iletişim"}, Answer: "contact"}}

	tr := New(rules, WithLocale(language.Turkish))
	if _, ok := tr.Best("İLETİŞİM bilgileri"); !ok {
		t.Fatalf("turkish folding should map İ to i")
	}
	tr = New([]Rule{{ID: 2, Keywords: []string{"  İSTANBUL "}, Answer: "city"}}, WithLocale(language.Turkish))
	if got, ok := tr.Best("istanbul ofisi"); !ok || got.Keyword != "istanbul" {
		t.Fatalf("Best = %+v, %v; want folded keyword %q", got, ok, "istanbul")
	}
}

func TestBest_ConcurrentUse(t *testing.T) {
	m := New([]Rule{{ID: 1, Keywords: []string{"go"}, Answer: "gopher"}})
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, ok := m.Best("let's GO"); !ok {
					t.Errorf("expected match")
					return
				}
			}
		}()
	}
	wg.Wait()
}
