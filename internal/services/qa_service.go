// Package services – QAService
//
// QAService owns the curated Q&A rules: listing in store order, creation with
// automatic ordering, partial updates, hard deletes and the atomic hit
// counter used by the matcher.
package services

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
)

// QAFilter narrows List.
type QAFilter struct {
	ActiveOnly bool
}

// QARuleInput carries the fields of a new rule. Category and IsActive are
// optional.
type QARuleInput struct {
	Keywords []string
	Question string
	Answer   string
	Category string
	IsActive *bool
}

// QAService implements the Q&A store.
type QAService struct {
	DB *gorm.DB
}

var qaTracer = otel.Tracer("services/QAService")

// List returns rules ordered by order_index, then id.
func (s *QAService) List(ctx context.Context, f QAFilter) ([]domain.QARule, error) {
	ctx, span := qaTracer.Start(ctx, "List",
		trace.WithAttributes(attribute.Bool("qa.active_only", f.ActiveOnly)))
	defer span.End()

	rules, err := repo.ListQARules(ctx, s.DB, f.ActiveOnly)
	if err != nil {
		return nil, storage("list rules", err)
	}
	if rules == nil {
		rules = []domain.QARule{}
	}
	return rules, nil
}

// Create validates in and stores a new rule at the end of the order with a
// zero hit count.
func (s *QAService) Create(ctx context.Context, in QARuleInput) (*domain.QARule, error) {
	ctx, span := qaTracer.Start(ctx, "Create")
	defer span.End()

	r := &domain.QARule{
		Keywords:   domain.NormalizeKeywords(in.Keywords),
		Question:   strings.TrimSpace(in.Question),
		Answer:     strings.TrimSpace(in.Answer),
		Category:   strings.TrimSpace(in.Category),
		IsActive:   true,
		OrderIndex: -1,
	}
	if r.Category == "" {
		r.Category = domain.DefaultCategory
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	if err := validateRule(r, true); err != nil {
		return nil, err
	}

	if err := repo.CreateQARule(ctx, s.DB, r); err != nil {
		return nil, storage("create rule", err)
	}
	span.SetAttributes(attribute.Int64("qa.id", int64(r.ID)))
	return r, nil
}

// Update merges the non-nil fields of p into the stored rule. An empty patch
// returns the rule unchanged.
func (s *QAService) Update(ctx context.Context, id uint, p domain.QARulePatch) (*domain.QARule, error) {
	ctx, span := qaTracer.Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("qa.id", int64(id))))
	defer span.End()

	var out *domain.QARule
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := repo.GetQARule(ctx, tx, id)
		if err != nil {
			return err
		}
		if p.IsEmpty() {
			out = r
			return nil
		}
		p.Apply(r)
		if err := validateRule(r, false); err != nil {
			return err
		}
		if err := repo.SaveQARule(ctx, tx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, repo.ErrNotFound):
		return nil, ErrRuleNotFound
	case errors.Is(err, ErrValidation):
		return nil, err
	default:
		return nil, storage("update rule", err)
	}
}

// Delete removes a rule permanently. Logged turns keep their matched id.
func (s *QAService) Delete(ctx context.Context, id uint) error {
	ctx, span := qaTracer.Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("qa.id", int64(id))))
	defer span.End()

	if err := repo.DeleteQARule(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRuleNotFound
		}
		return storage("delete rule", err)
	}
	return nil
}

// IncrementHit adds one to the rule's hit counter in a single UPDATE.
func (s *QAService) IncrementHit(ctx context.Context, id uint) error {
	if err := repo.IncrementHit(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRuleNotFound
		}
		return storage("increment hit", err)
	}
	return nil
}

// validateRule checks required fields after normalization. On create all
// three must be present; on update an active rule must keep at least one
// keyword so it stays reachable.
func validateRule(r *domain.QARule, creating bool) error {
	if creating && len(r.Keywords) == 0 {
		return validationf("keywords are required")
	}
	if !creating && r.IsActive && len(r.Keywords) == 0 {
		return validationf("an active rule needs at least one keyword")
	}
	if r.Question == "" {
		return validationf("question is required")
	}
	if r.Answer == "" {
		return validationf("answer is required")
	}
	return nil
}
