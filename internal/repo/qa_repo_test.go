package repo

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

func TestCreateQARule_AssignsNextOrderIndex(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()

	a := mustCreateRule(t, db, domain.QARule{Keywords: []string{"a"}, Question: "qa", Answer: "A", Category: "general", IsActive: true, OrderIndex: -1})
	if a.OrderIndex != 1 || a.ID == 0 {
		t.Fatalf("first rule should get order 1, got %+v", a)
	}
	mustCreateRule(t, db, domain.QARule{Keywords: []string{"x"}, Question: "qx", Answer: "X", Category: "general", IsActive: true, OrderIndex: 7})
	c := mustCreateRule(t, db, domain.QARule{Keywords: []string{"c"}, Question: "qc", Answer: "C", Category: "general", IsActive: true, OrderIndex: -1})
	if c.OrderIndex != 8 {
		t.Fatalf("expected max+1 = 8, got %d", c.OrderIndex)
	}

	next, err := NextOrderIndex(ctx, db)
	if err != nil || next != 9 {
		t.Fatalf("NextOrderIndex = %d, %v; want 9", next, err)
	}
}

func TestCreateQARule_KeepsExplicitInactive(t *testing.T) {
	db := newTestDB(t, allModels()...)
	r := mustCreateRule(t, db, domain.QARule{Keywords: []string{"a"}, Question: "q", Answer: "A", IsActive: false, OrderIndex: -1})

	got, err := GetQARule(context.Background(), db, r.ID)
	if err != nil {
		t.Fatalf("GetQARule: %v", err)
	}
	if got.IsActive {
		t.Fatalf("inactive rule stored as active")
	}
	if got.Category != domain.DefaultCategory {
		t.Fatalf("empty category should fall back to column default, got %q", got.Category)
	}
}

func TestListQARules_OrderAndActiveFilter(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()

	r3 := mustCreateRule(t, db, domain.QARule{Keywords: []string{"c"}, Question: "third", Answer: "C", IsActive: true, OrderIndex: 2})
	r1 := mustCreateRule(t, db, domain.QARule{Keywords: []string{"a"}, Question: "first", Answer: "A", IsActive: true, OrderIndex: 1})
	r2 := mustCreateRule(t, db, domain.QARule{Keywords: []string{"b"}, Question: "second", Answer: "B", IsActive: false, OrderIndex: 1})

	all, err := ListQARules(ctx, db, false)
	if err != nil {
		t.Fatalf("ListQARules: %v", err)
	}
	var ids []uint
	for _, r := range all {
		ids = append(ids, r.ID)
	}
	if !reflect.DeepEqual(ids, []uint{r1.ID, r2.ID, r3.ID}) {
		t.Fatalf("order = %v; want [%d %d %d]", ids, r1.ID, r2.ID, r3.ID)
	}

	active, err := ListQARules(ctx, db, true)
	if err != nil {
		t.Fatalf("ListQARules active: %v", err)
	}
	if len(active) != 2 || active[0].ID != r1.ID || active[1].ID != r3.ID {
		t.Fatalf("active filter unexpected: %+v", active)
	}
}

func TestSaveQARule_UpdatesAndNotFound(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()
	r := mustCreateRule(t, db, domain.QARule{Keywords: []string{"a"}, Question: "q", Answer: "A", IsActive: true, OrderIndex: -1})

	r.Keywords = []string{"z", "y"}
	r.IsActive = false
	r.OrderIndex = 0
	if err := SaveQARule(ctx, db, r); err != nil {
		t.Fatalf("SaveQARule: %v", err)
	}
	got, _ := GetQARule(ctx, db, r.ID)
	if got.IsActive || got.OrderIndex != 0 || !reflect.DeepEqual([]string(got.Keywords), []string{"z", "y"}) {
		t.Fatalf("zero values not persisted: %+v", got)
	}

	missing := &domain.QARule{ID: 999, Keywords: []string{"x"}, Question: "q", Answer: "a"}
	if err := SaveQARule(ctx, db, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteQARule(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()
	r := mustCreateRule(t, db, domain.QARule{Keywords: []string{"a"}, Question: "q", Answer: "A", IsActive: true, OrderIndex: -1})

	if err := DeleteQARule(ctx, db, r.ID); err != nil {
		t.Fatalf("DeleteQARule: %v", err)
	}
	if _, err := GetQARule(ctx, db, r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteQARule(ctx, db, r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
}

func TestIncrementHit_AtomicUnderConcurrency(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()
	r := mustCreateRule(t, db, domain.QARule{Keywords: []string{"a"}, Question: "q", Answer: "A", IsActive: true, OrderIndex: -1})
	// shared-cache SQLite fails concurrent writers with "table is locked"
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- IncrementHit(ctx, db, r.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("IncrementHit: %v", err)
		}
	}
	got, _ := GetQARule(ctx, db, r.ID)
	if got.HitCount != n {
		t.Fatalf("hit_count = %d; want %d", got.HitCount, n)
	}

	if err := IncrementHit(ctx, db, 424242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing rule, got %v", err)
	}
}

func TestListQARules_NoTable(t *testing.T) {
	db := newTestDB(t)
	if _, err := ListQARules(context.Background(), db, false); err == nil {
		t.Fatalf("expected error without schema")
	}
}
