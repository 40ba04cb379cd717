package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
	"github.com/tbourn/go-portfolio-backend/internal/utils"
)

// Pagination bounds for the admin message log.
const (
	DefaultTurnPageSize = 100
	MaxTurnPageSize     = 500
)

// TurnInput is one turn to append to the chat log.
type TurnInput struct {
	VisitorID     string
	VisitorName   *string
	InputText     string
	ResponseText  string
	MatchedRuleID *uint
	SourceIP      string
	UserAgent     string
}

// TurnPage is one page of the chat log.
type TurnPage struct {
	Items  []domain.ChatTurnView
	Total  int64
	Limit  int
	Offset int
}

// ChatLogService appends chat turns and pages through them.
type ChatLogService struct {
	DB *gorm.DB

	// NewVisitorID generates an id when a turn has none.
	NewVisitorID func() string
}

var chatLogTracer = otel.Tracer("services/ChatLogService")

// Record appends a turn. The creation time is assigned here, in UTC.
func (s *ChatLogService) Record(ctx context.Context, in TurnInput) (*domain.ChatTurn, error) {
	ctx, span := chatLogTracer.Start(ctx, "Record")
	defer span.End()

	visitor := strings.TrimSpace(in.VisitorID)
	if visitor == "" {
		visitor = s.visitorID()
	}
	t := &domain.ChatTurn{
		VisitorID:     visitor,
		VisitorName:   in.VisitorName,
		InputText:     in.InputText,
		ResponseText:  in.ResponseText,
		MatchedRuleID: in.MatchedRuleID,
		SourceIP:      in.SourceIP,
		UserAgent:     in.UserAgent,
	}
	if err := repo.CreateTurn(ctx, s.DB, t); err != nil {
		return nil, storage("record turn", err)
	}
	span.SetAttributes(attribute.Int64("turn.id", int64(t.ID)))
	return t, nil
}

// ListPage returns turns newest first with the total count.
func (s *ChatLogService) ListPage(ctx context.Context, limit, offset int) (*TurnPage, error) {
	limit, offset = utils.ClampLimitOffset(limit, offset, DefaultTurnPageSize, MaxTurnPageSize)
	ctx, span := chatLogTracer.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int("limit", limit),
			attribute.Int("offset", offset),
		),
	)
	defer span.End()

	total, err := repo.CountTurns(ctx, s.DB)
	if err != nil {
		return nil, storage("count turns", err)
	}
	page := &TurnPage{Items: []domain.ChatTurnView{}, Total: total, Limit: limit, Offset: offset}
	if total == 0 || int64(offset) >= total {
		return page, nil
	}
	items, err := repo.ListTurnsPage(ctx, s.DB, limit, offset)
	if err != nil {
		return nil, storage("list turns", err)
	}
	page.Items = items
	return page, nil
}

func (s *ChatLogService) visitorID() string {
	if s.NewVisitorID != nil {
		return s.NewVisitorID()
	}
	return NewVisitorID()
}
