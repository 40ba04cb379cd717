package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

func TestQAService_CreateAssignsOrderAndDefaults(t *testing.T) {
	s := &QAService{DB: newTestDB(t)}
	ctx := context.Background()

	a, err := s.Create(ctx, QARuleInput{Keywords: []string{" Hello ", "hi", "hi "}, Question: " Greeting? ", Answer: "Hello!"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.OrderIndex != 1 || !a.IsActive || a.Category != domain.DefaultCategory || a.HitCount != 0 {
		t.Fatalf("unexpected defaults: %+v", a)
	}
	if got := []string(a.Keywords); len(got) != 2 || got[0] != "Hello" || got[1] != "hi" {
		t.Fatalf("keywords = %v", got)
	}
	if a.Question != "Greeting?" {
		t.Fatalf("question not trimmed: %q", a.Question)
	}

	b, err := s.Create(ctx, QARuleInput{Keywords: []string{"cv"}, Question: "CV?", Answer: "Here.", Category: "cv", IsActive: ptr(false)})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if b.OrderIndex != 2 || b.IsActive || b.Category != "cv" {
		t.Fatalf("unexpected second rule: %+v", b)
	}

	all, err := s.List(ctx, QAFilter{})
	if err != nil || len(all) != 2 || all[0].ID != a.ID {
		t.Fatalf("List = %v, %v", all, err)
	}
	active, err := s.List(ctx, QAFilter{ActiveOnly: true})
	if err != nil || len(active) != 1 || active[0].ID != a.ID {
		t.Fatalf("List active = %v, %v", active, err)
	}
}

func TestQAService_CreateValidation(t *testing.T) {
	s := &QAService{DB: newTestDB(t)}
	cases := []struct {
		name string
		in   QARuleInput
	}{
		{"no keywords", QARuleInput{Question: "q", Answer: "a"}},
		{"blank keywords", QARuleInput{Keywords: []string{" ", ""}, Question: "q", Answer: "a"}},
		{"no question", QARuleInput{Keywords: []string{"k"}, Question: "  ", Answer: "a"}},
		{"no answer", QARuleInput{Keywords: []string{"k"}, Question: "q"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Create(context.Background(), tc.in); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v; want ErrValidation", err)
			}
		})
	}
}

func TestQAService_Update(t *testing.T) {
	s := &QAService{DB: newTestDB(t)}
	ctx := context.Background()
	r, _ := s.Create(ctx, QARuleInput{Keywords: []string{"hello"}, Question: "q", Answer: "a"})

	got, err := s.Update(ctx, r.ID, domain.QARulePatch{})
	if err != nil || got.Answer != "a" {
		t.Fatalf("empty patch = %+v, %v", got, err)
	}

	got, err = s.Update(ctx, r.ID, domain.QARulePatch{Answer: ptr("b"), Keywords: &[]string{"Hey", "yo"}, IsActive: ptr(false)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Answer != "b" || got.IsActive || len(got.Keywords) != 2 || got.Keywords[0] != "Hey" {
		t.Fatalf("unexpected update: %+v", got)
	}

	// Inactive rules may drop all keywords; active ones may not.
	if _, err := s.Update(ctx, r.ID, domain.QARulePatch{Keywords: &[]string{}}); err != nil {
		t.Fatalf("inactive rule without keywords: %v", err)
	}
	if _, err := s.Update(ctx, r.ID, domain.QARulePatch{IsActive: ptr(true)}); !errors.Is(err, ErrValidation) {
		t.Fatalf("active rule without keywords err = %v", err)
	}
	if _, err := s.Update(ctx, r.ID, domain.QARulePatch{Question: ptr(" ")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank question err = %v", err)
	}
	if _, err := s.Update(ctx, 999, domain.QARulePatch{Answer: ptr("x")}); !errors.Is(err, ErrRuleNotFound) {
		t.Fatalf("missing rule err = %v", err)
	}
}

func TestQAService_DeleteAndIncrementHit(t *testing.T) {
	s := &QAService{DB: newTestDB(t)}
	ctx := context.Background()
	r, _ := s.Create(ctx, QARuleInput{Keywords: []string{"k"}, Question: "q", Answer: "a"})

	for range 3 {
		if err := s.IncrementHit(ctx, r.ID); err != nil {
			t.Fatalf("IncrementHit: %v", err)
		}
	}
	rules, _ := s.List(ctx, QAFilter{})
	if rules[0].HitCount != 3 {
		t.Fatalf("hit_count = %d; want 3", rules[0].HitCount)
	}

	if err := s.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, r.ID); !errors.Is(err, ErrRuleNotFound) {
		t.Fatalf("second Delete err = %v", err)
	}
	if err := s.IncrementHit(ctx, r.ID); !errors.Is(err, ErrRuleNotFound) {
		t.Fatalf("IncrementHit deleted err = %v", err)
	}
}

func TestQAService_StorageErrors(t *testing.T) {
	s := &QAService{DB: newTestDB(t, &domain.ChatTurn{})}
	ctx := context.Background()
	if _, err := s.List(ctx, QAFilter{}); !errors.Is(err, ErrStorage) {
		t.Fatalf("List err = %v", err)
	}
	if _, err := s.Create(ctx, QARuleInput{Keywords: []string{"k"}, Question: "q", Answer: "a"}); !errors.Is(err, ErrStorage) {
		t.Fatalf("Create err = %v", err)
	}
}
