// Package domain defines the persistence models for the portfolio chatbot:
// Q&A rules, the chatbot configuration singleton, logged chat turns and
// admin accounts. These types are mapped with GORM and shared by the
// repository, service and HTTP layers.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultCategory is assigned to rules created without a category.
const DefaultCategory = "general"

// QARule is one curated question/answer pair triggered by keywords.
//
// Fields:
//   - ID: autoincrement primary key.
//   - Keywords: ordered trigger phrases, stored as a JSON array.
//   - Question: canonical question shown in admin views and stats.
//   - Answer: reply returned when the rule wins a match.
//   - Category: free-form grouping, "general" by default.
//   - IsActive: inactive rules never match.
//   - OrderIndex: position in store order; earlier rules win ties.
//   - HitCount: number of times the rule produced a reply.
type QARule struct {
	ID         uint                        `json:"id"          gorm:"primaryKey;autoIncrement"`
	Keywords   datatypes.JSONSlice[string] `json:"keywords"    gorm:"not null"`
	Question   string                      `json:"question"    gorm:"type:text;not null"`
	Answer     string                      `json:"answer"      gorm:"type:text;not null"`
	Category   string                      `json:"category"    gorm:"type:varchar(64);not null;default:'general'"`
	IsActive   bool                        `json:"is_active"   gorm:"not null"`
	OrderIndex int                         `json:"order_index" gorm:"not null;default:0;index"`
	HitCount   int64                       `json:"hit_count"   gorm:"not null;default:0"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// TableName returns the database table name for QARule.
func (QARule) TableName() string { return "chatbot_qa" }

// ChatbotConfig is the process-wide chatbot configuration. Exactly one row
// exists, with ID 1.
type ChatbotConfig struct {
	ID              uint      `json:"id"               gorm:"primaryKey"`
	BotName         string    `json:"bot_name"         gorm:"type:varchar(128);not null"`
	WelcomeMessage  string    `json:"welcome_message"  gorm:"type:text;not null"`
	FallbackMessage string    `json:"fallback_message" gorm:"type:text;not null"`
	BotAvatarURL    string    `json:"bot_avatar"       gorm:"type:text"`
	ThemeColor      string    `json:"theme_color"      gorm:"type:varchar(16);not null"`
	IsActive        bool      `json:"is_active"        gorm:"not null"`
	ResponseDelayMs int       `json:"response_delay"   gorm:"not null;default:0"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for ChatbotConfig.
func (ChatbotConfig) TableName() string { return "chatbot_config" }

// ConfigID is the primary key of the configuration singleton.
const ConfigID uint = 1

// DefaultChatbotConfig returns the configuration written when the singleton
// row does not exist yet.
func DefaultChatbotConfig() ChatbotConfig {
	return ChatbotConfig{
		ID:              ConfigID,
		BotName:         "RoboAssistant",
		WelcomeMessage:  "Hi! I'm the portfolio assistant. Ask me about projects, skills or how to get in touch.",
		FallbackMessage: "Sorry, I don't have an answer for that yet. Try asking about projects, skills or contact details.",
		ThemeColor:      "#10b981",
		IsActive:        true,
		ResponseDelayMs: 500,
	}
}

// ChatTurn is one logged visitor message and the reply that was sent.
// MatchedRuleID is a weak reference: the rule may be deleted later and the
// turn is kept.
type ChatTurn struct {
	ID            uint      `json:"id"               gorm:"primaryKey;autoIncrement"`
	VisitorID     string    `json:"visitor_id"       gorm:"type:varchar(64);not null;index"`
	VisitorName   *string   `json:"visitor_name"     gorm:"type:varchar(128)"`
	InputText     string    `json:"message"          gorm:"type:text;not null"`
	ResponseText  string    `json:"response"         gorm:"type:text;not null"`
	MatchedRuleID *uint     `json:"matched_qa_id"    gorm:"index"`
	SourceIP      string    `json:"ip_address"       gorm:"type:varchar(64)"`
	UserAgent     string    `json:"user_agent"       gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"       gorm:"not null;index"`
}

// TableName returns the database table name for ChatTurn.
func (ChatTurn) TableName() string { return "chat_messages" }

// ChatTurnView is a ChatTurn joined with the question of its matched rule.
type ChatTurnView struct {
	ChatTurn
	MatchedQuestion *string `json:"matched_question"`
}

// Admin is an account allowed to manage the chatbot.
type Admin struct {
	ID           uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for Admin.
func (Admin) TableName() string { return "admins" }
