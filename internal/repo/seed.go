package repo

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

//go:embed seeddata/default.yaml
var defaultSeed []byte

// SeedData is the content of a seed file.
type SeedData struct {
	Config *SeedConfig `yaml:"config"`
	Rules  []SeedRule  `yaml:"rules"`
}

// SeedConfig overrides the built-in chatbot configuration defaults.
type SeedConfig struct {
	BotName         string `yaml:"bot_name"`
	WelcomeMessage  string `yaml:"welcome_message"`
	FallbackMessage string `yaml:"fallback_message"`
	BotAvatarURL    string `yaml:"bot_avatar"`
	ThemeColor      string `yaml:"theme_color"`
	IsActive        *bool  `yaml:"is_active"`
	ResponseDelayMs *int   `yaml:"response_delay"`
}

// SeedRule is one starter Q&A rule.
type SeedRule struct {
	Keywords []string `yaml:"keywords"`
	Question string   `yaml:"question"`
	Answer   string   `yaml:"answer"`
	Category string   `yaml:"category"`
	IsActive *bool    `yaml:"is_active"`
}

// SeedResult reports what Seed wrote.
type SeedResult struct {
	ConfigCreated bool
	RulesCreated  int
}

// LoadSeed reads a YAML seed file. An empty path selects the built-in seed.
func LoadSeed(path string) (*SeedData, error) {
	if strings.TrimSpace(path) == "" {
		return ParseSeed(bytes.NewReader(defaultSeed))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSeed(f)
}

// ParseSeed decodes seed YAML and checks every rule has keywords, a
// question and an answer.
func ParseSeed(r io.Reader) (*SeedData, error) {
	var data SeedData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	for i, sr := range data.Rules {
		if len(domain.NormalizeKeywords(sr.Keywords)) == 0 ||
			strings.TrimSpace(sr.Question) == "" || strings.TrimSpace(sr.Answer) == "" {
			return nil, fmt.Errorf("seed: rule %d: keywords, question and answer are required", i)
		}
	}
	return &data, nil
}

// Seed writes the configuration singleton when it is missing and the rules
// when the Q&A table is empty. Existing data is never touched, so calling
// it on every start is safe.
func Seed(ctx context.Context, db *gorm.DB, data *SeedData) (SeedResult, error) {
	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := CountConfigs(ctx, tx)
		if err != nil {
			return err
		}
		if n == 0 {
			cfg := data.chatbotConfig()
			if err := tx.Create(&cfg).Error; err != nil {
				return err
			}
			res.ConfigCreated = true
		}

		n, err = CountQARules(ctx, tx)
		if err != nil {
			return err
		}
		if n > 0 || len(data.Rules) == 0 {
			return nil
		}
		rules := make([]domain.QARule, 0, len(data.Rules))
		// 1-based, matching NextOrderIndex on an empty table.
		for i, sr := range data.Rules {
			rules = append(rules, sr.rule(i+1))
		}
		if err := tx.Create(&rules).Error; err != nil {
			return err
		}
		res.RulesCreated = len(rules)
		return nil
	})
	return res, err
}

func (d *SeedData) chatbotConfig() domain.ChatbotConfig {
	cfg := domain.DefaultChatbotConfig()
	if d == nil || d.Config == nil {
		return cfg
	}
	sc := d.Config
	if sc.BotName != "" {
		cfg.BotName = sc.BotName
	}
	if sc.WelcomeMessage != "" {
		cfg.WelcomeMessage = sc.WelcomeMessage
	}
	if sc.FallbackMessage != "" {
		cfg.FallbackMessage = sc.FallbackMessage
	}
	if sc.BotAvatarURL != "" {
		cfg.BotAvatarURL = sc.BotAvatarURL
	}
	if sc.ThemeColor != "" {
		cfg.ThemeColor = sc.ThemeColor
	}
	if sc.IsActive != nil {
		cfg.IsActive = *sc.IsActive
	}
	if sc.ResponseDelayMs != nil {
		cfg.ResponseDelayMs = *sc.ResponseDelayMs
	}
	return cfg
}

func (sr SeedRule) rule(order int) domain.QARule {
	active := true
	if sr.IsActive != nil {
		active = *sr.IsActive
	}
	cat := strings.TrimSpace(sr.Category)
	if cat == "" {
		cat = domain.DefaultCategory
	}
	return domain.QARule{
		Keywords:   domain.NormalizeKeywords(sr.Keywords),
		Question:   strings.TrimSpace(sr.Question),
		Answer:     strings.TrimSpace(sr.Answer),
		Category:   cat,
		IsActive:   active,
		OrderIndex: order,
	}
}
