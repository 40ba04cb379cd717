package domain

import (
	"slices"
	"strings"
)

// QARulePatch carries the fields of a partial rule update. Nil fields are
// left untouched.
type QARulePatch struct {
	Keywords   *[]string
	Question   *string
	Answer     *string
	Category   *string
	IsActive   *bool
	OrderIndex *int
}

// IsEmpty reports whether the patch changes nothing.
func (p QARulePatch) IsEmpty() bool {
	return p.Keywords == nil && p.Question == nil && p.Answer == nil &&
		p.Category == nil && p.IsActive == nil && p.OrderIndex == nil
}

// Apply merges the non-nil fields into r. Keywords are normalized.
func (p QARulePatch) Apply(r *QARule) {
	if p.Keywords != nil {
		r.Keywords = NormalizeKeywords(*p.Keywords)
	}
	if p.Question != nil {
		r.Question = strings.TrimSpace(*p.Question)
	}
	if p.Answer != nil {
		r.Answer = strings.TrimSpace(*p.Answer)
	}
	if p.Category != nil {
		r.Category = strings.TrimSpace(*p.Category)
		if r.Category == "" {
			r.Category = DefaultCategory
		}
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
	if p.OrderIndex != nil {
		r.OrderIndex = *p.OrderIndex
	}
}

// ChatbotConfigPatch carries the fields of a partial configuration update.
type ChatbotConfigPatch struct {
	BotName         *string
	WelcomeMessage  *string
	FallbackMessage *string
	BotAvatarURL    *string
	ThemeColor      *string
	IsActive        *bool
	ResponseDelayMs *int
}

// IsEmpty reports whether the patch changes nothing.
func (p ChatbotConfigPatch) IsEmpty() bool {
	return p.BotName == nil && p.WelcomeMessage == nil && p.FallbackMessage == nil &&
		p.BotAvatarURL == nil && p.ThemeColor == nil && p.IsActive == nil &&
		p.ResponseDelayMs == nil
}

// Apply merges the non-nil fields into c. The ID is never changed.
func (p ChatbotConfigPatch) Apply(c *ChatbotConfig) {
	if p.BotName != nil {
		c.BotName = *p.BotName
	}
	if p.WelcomeMessage != nil {
		c.WelcomeMessage = *p.WelcomeMessage
	}
	if p.FallbackMessage != nil {
		c.FallbackMessage = *p.FallbackMessage
	}
	if p.BotAvatarURL != nil {
		c.BotAvatarURL = *p.BotAvatarURL
	}
	if p.ThemeColor != nil {
		c.ThemeColor = strings.TrimSpace(*p.ThemeColor)
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	if p.ResponseDelayMs != nil {
		c.ResponseDelayMs = *p.ResponseDelayMs
	}
}

// NormalizeKeywords trims each keyword, drops empty entries and removes
// exact duplicates keeping the first occurrence. Case is preserved: folding
// is locale dependent and happens in the matcher. The result is never nil.
func NormalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" || slices.Contains(out, k) {
			continue
		}
		out = append(out, k)
	}
	return out
}

// SplitKeywords parses the comma-separated form used by the admin UI.
func SplitKeywords(csv string) []string {
	return NormalizeKeywords(strings.Split(csv, ","))
}
