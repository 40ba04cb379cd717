// Package services – ChatbotService
//
// ChatbotService answers visitor messages. Respond runs the keyword matcher
// over the active rules against one config snapshot. Chat wraps it with input
// validation, idempotent replays, visitor ids and the chat log.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/matcher"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
)

// UnavailableMessage is the reply while the chatbot is switched off.
const UnavailableMessage = "The chatbot is not available right now. Please try again later."

// DefaultMaxMessageRunes bounds a visitor message when MaxMessageRunes is unset.
const DefaultMaxMessageRunes = 2000

// RuleSource is the part of the Q&A store the chatbot reads.
type RuleSource interface {
	List(ctx context.Context, f QAFilter) ([]domain.QARule, error)
	IncrementHit(ctx context.Context, id uint) error
}

// ConfigSource supplies the chatbot configuration snapshot.
type ConfigSource interface {
	Get(ctx context.Context) (*domain.ChatbotConfig, error)
}

// TurnRecorder appends chat turns.
type TurnRecorder interface {
	Record(ctx context.Context, in TurnInput) (*domain.ChatTurn, error)
}

// Reply is the outcome of matching one utterance.
type Reply struct {
	Text     string
	Matched  bool
	RuleID   *uint
	Disabled bool
}

// ChatRequest is one visitor message with its request metadata.
type ChatRequest struct {
	Message     string
	VisitorID   string
	VisitorName *string
	IP          string
	UserAgent   string

	// IdempotencyKey is optional. Scope separates keys of different routes
	// and clients. A key is bound to the visitor id and message it was first
	// sent with.
	IdempotencyKey   string
	IdempotencyScope string
}

// ChatReply is what the chat endpoint returns.
type ChatReply struct {
	Text      string
	Matched   bool
	Disabled  bool
	Replayed  bool
	VisitorID string
	TurnID    uint
}

// ChatbotService implements Respond and Chat.
type ChatbotService struct {
	// DB holds idempotency records and replayed turns.
	DB *gorm.DB

	Rules  RuleSource
	Config ConfigSource
	Log    TurnRecorder

	Locale          language.Tag
	MaxMessageRunes int
	IdempotencyTTL  time.Duration

	NewVisitorID func() string
	Now          func() time.Time
}

var chatbotTracer = otel.Tracer("services/ChatbotService")

// Respond matches utterance against the active rules. The config is read
// once, so a concurrent config update cannot mix old and new values in one
// reply. A match increments the rule's hit counter exactly once.
func (s *ChatbotService) Respond(ctx context.Context, utterance string) (*Reply, error) {
	ctx, span := chatbotTracer.Start(ctx, "Respond")
	defer span.End()

	cfg, err := s.Config.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.IsActive {
		span.SetAttributes(attribute.Bool("chatbot.disabled", true))
		return &Reply{Text: UnavailableMessage, Disabled: true}, nil
	}

	rules, err := s.Rules.List(ctx, QAFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	m := matcher.New(toMatcherRules(rules), matcher.WithLocale(s.Locale))
	span.SetAttributes(attribute.Int("qa.active_rules", m.Len()))
	best, ok := m.Best(utterance)
	if !ok {
		span.SetAttributes(attribute.Bool("chatbot.matched", false))
		return &Reply{Text: cfg.FallbackMessage}, nil
	}

	span.SetAttributes(
		attribute.Bool("chatbot.matched", true),
		attribute.Int64("qa.id", int64(best.RuleID)),
		attribute.Int("match.score", best.Score),
	)
	if err := s.Rules.IncrementHit(ctx, best.RuleID); err != nil {
		// The rule was deleted after it was listed; the answer still stands.
		if !errors.Is(err, ErrRuleNotFound) {
			return nil, err
		}
		zerolog.Ctx(ctx).Warn().Uint("qa_id", best.RuleID).Msg("matched rule vanished before hit count")
	}
	id := best.RuleID
	return &Reply{Text: best.Answer, Matched: true, RuleID: &id}, nil
}

// Chat validates the message, replays a stored turn for a known idempotency
// key, otherwise responds and logs the turn. A failure to log is reported but
// does not withhold the reply.
func (s *ChatbotService) Chat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	ctx, span := chatbotTracer.Start(ctx, "Chat",
		trace.WithAttributes(attribute.Bool("idempotency.key_present", req.IdempotencyKey != "")))
	defer span.End()

	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, validationf("message is required")
	}
	if n := utf8.RuneCountInString(msg); n > s.maxRunes() {
		return nil, validationf("message must be at most %d characters", s.maxRunes())
	}

	hash := requestHash(req.VisitorID, msg)
	out, err := s.replay(ctx, req, hash)
	if err != nil {
		return nil, err
	}
	if out != nil {
		span.SetAttributes(attribute.Bool("idempotency.replayed", true))
		chatbotReplies.WithLabelValues(outcomeReplayed).Inc()
		return out, nil
	}

	reply, err := s.Respond(ctx, msg)
	if err != nil {
		return nil, err
	}
	countReply(reply)
	if reply.Disabled {
		return &ChatReply{Text: reply.Text, Disabled: true}, nil
	}

	visitor := strings.TrimSpace(req.VisitorID)
	if visitor == "" {
		visitor = s.visitorID()
	}
	out = &ChatReply{Text: reply.Text, Matched: reply.Matched, VisitorID: visitor}

	// The log keeps the message as sent; matching used the trimmed form.
	turn, err := s.Log.Record(ctx, TurnInput{
		VisitorID:     visitor,
		VisitorName:   req.VisitorName,
		InputText:     req.Message,
		ResponseText:  reply.Text,
		MatchedRuleID: reply.RuleID,
		SourceIP:      req.IP,
		UserAgent:     req.UserAgent,
	})
	if err != nil {
		chatLogFailures.Inc()
		zerolog.Ctx(ctx).Error().Err(err).Str("visitor_id", visitor).Msg("chat turn not logged")
		return out, nil
	}
	out.TurnID = turn.ID
	s.remember(ctx, req, hash, turn.ID)
	return out, nil
}

// replay returns the stored reply for a still-valid idempotency key, or nil
// when there is none. A key reused with another visitor id or message yields
// ErrIdempotencyConflict.
func (s *ChatbotService) replay(ctx context.Context, req ChatRequest, hash string) (*ChatReply, error) {
	if req.IdempotencyKey == "" || s.DB == nil {
		return nil, nil
	}
	rec, err := repo.GetIdempotency(ctx, s.DB, req.IdempotencyScope, req.IdempotencyKey, s.now())
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("idempotency lookup failed")
		}
		return nil, nil
	}
	if rec.RequestHash != hash {
		zerolog.Ctx(ctx).Warn().Str("scope", req.IdempotencyScope).Msg("idempotency key reused with another request")
		return nil, ErrIdempotencyConflict
	}
	t, err := repo.GetTurn(ctx, s.DB, rec.TurnID)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Uint("turn_id", rec.TurnID).Msg("idempotent turn missing")
		return nil, nil
	}
	return &ChatReply{
		Text:      t.ResponseText,
		Matched:   t.MatchedRuleID != nil,
		Replayed:  true,
		VisitorID: t.VisitorID,
		TurnID:    t.ID,
	}, nil
}

// remember stores an idempotency record for a freshly logged turn. A key
// already taken by a concurrent request is left as is.
func (s *ChatbotService) remember(ctx context.Context, req ChatRequest, hash string, turnID uint) {
	if req.IdempotencyKey == "" || s.DB == nil || s.IdempotencyTTL <= 0 {
		return
	}
	_, err := repo.CreateIdempotency(ctx, s.DB, req.IdempotencyScope, req.IdempotencyKey, hash, turnID, http.StatusOK, s.IdempotencyTTL)
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("idempotency record not stored")
	}
}

func (s *ChatbotService) maxRunes() int {
	if s.MaxMessageRunes > 0 {
		return s.MaxMessageRunes
	}
	return DefaultMaxMessageRunes
}

func (s *ChatbotService) visitorID() string {
	if s.NewVisitorID != nil {
		return s.NewVisitorID()
	}
	return NewVisitorID()
}

func (s *ChatbotService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// requestHash fingerprints the parts of a chat request an idempotency key is
// bound to.
func requestHash(visitorID, msg string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(visitorID) + "\x00" + msg))
	return hex.EncodeToString(sum[:])
}

func toMatcherRules(rules []domain.QARule) []matcher.Rule {
	out := make([]matcher.Rule, 0, len(rules))
	for _, r := range rules {
		out = append(out, matcher.Rule{ID: r.ID, Keywords: r.Keywords, Answer: r.Answer})
	}
	return out
}
