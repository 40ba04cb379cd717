package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

func TestLoadSeed_BuiltInDefault(t *testing.T) {
	data, err := LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if data.Config == nil || data.Config.BotName == "" {
		t.Fatalf("built-in seed should carry a config: %+v", data.Config)
	}
	if len(data.Rules) != 9 {
		t.Fatalf("expected 9 starter rules, got %d", len(data.Rules))
	}
}

func TestParseSeed_RejectsIncompleteRule(t *testing.T) {
	in := "rules:\n  - keywords: ['  ']\n    question: q\n    answer: a\n"
	if _, err := ParseSeed(strings.NewReader(in)); err == nil {
		t.Fatalf("expected error for rule without keywords")
	}
	if _, err := ParseSeed(strings.NewReader("unknown_field: 1\n")); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoadSeed_FromFileAndMissingFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "seed.yaml")
	content := `config:
  bot_name: Custom
  is_active: false
  response_delay: 0
rules:
  - keywords: [Ros, robot]
    question: "What is ROS?"
    answer: "ROS is great"
  - keywords: [hidden]
    question: q
    answer: a
    category: misc
    is_active: false
`
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	data, err := LoadSeed(p)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}

	db := newTestDB(t, allModels()...)
	ctx := context.Background()
	res, err := Seed(ctx, db, data)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !res.ConfigCreated || res.RulesCreated != 2 {
		t.Fatalf("unexpected seed result: %+v", res)
	}

	cfg, _ := GetConfig(ctx, db)
	if cfg.BotName != "Custom" || cfg.IsActive || cfg.ResponseDelayMs != 0 {
		t.Fatalf("config overrides not applied: %+v", cfg)
	}
	if cfg.ThemeColor != domain.DefaultChatbotConfig().ThemeColor {
		t.Fatalf("unset fields should keep defaults: %+v", cfg)
	}

	rules, _ := ListQARules(ctx, db, false)
	if len(rules) != 2 || rules[0].Keywords[0] != "Ros" || rules[0].OrderIndex != 1 || rules[0].Category != domain.DefaultCategory || !rules[0].IsActive {
		t.Fatalf("first seeded rule unexpected: %+v", rules)
	}
	if rules[1].IsActive || rules[1].Category != "misc" || rules[1].OrderIndex != 2 {
		t.Fatalf("second seeded rule unexpected: %+v", rules[1])
	}
	if next, err := NextOrderIndex(ctx, db); err != nil || next != 3 {
		t.Fatalf("NextOrderIndex after seed = %d, %v; want 3", next, err)
	}

	if _, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()
	data, err := LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if _, err := Seed(ctx, db, data); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	res, err := Seed(ctx, db, data)
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if res.ConfigCreated || res.RulesCreated != 0 {
		t.Fatalf("second run must not write: %+v", res)
	}
	if n, _ := CountQARules(ctx, db); n != 9 {
		t.Fatalf("expected 9 rules, got %d", n)
	}
}
