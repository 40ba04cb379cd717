package domain

import "time"

// Idempotency records the chat turn produced for a client-supplied
// Idempotency-Key, keyed by (scope, key). A retry with the same key inside
// the TTL replays the stored turn instead of matching and logging again.
// RequestHash fingerprints the request body; a reuse of the key with another
// body is refused.
type Idempotency struct {
	ID          string    `gorm:"type:varchar(36);primaryKey"`
	Scope       string    `gorm:"type:varchar(192);not null;uniqueIndex:ux_idem_scope_key,priority:1"`
	Key         string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_idem_scope_key,priority:2"`
	TurnID      uint      `gorm:"not null"`
	Status      int       `gorm:"not null"`
	RequestHash string    `gorm:"type:varchar(64);not null;default:''"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt   time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
