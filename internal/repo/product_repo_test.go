package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/assistec/go-whats-backend/internal/domain"
)

func newRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, model string, qty int, price float64) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, DeviceModel: model, Quantity: qty, Price: price}
	if err := CreateProduct(context.Background(), db, p); err != nil {
		t.Fatalf("seed product %q: %v", name, err)
	}
	return p
}

func TestSearchProducts_BothTermsEmpty(t *testing.T) {
	db := newRepoDB(t, &domain.Product{})
	seedProduct(t, db, "Frontal Galaxy S20", "Galaxy S20", 5, 189.9)

	got, err := SearchProducts(context.Background(), db, "", "  ")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(got))
	}
}

func TestSearchProducts_FiltersAndOrder(t *testing.T) {
	db := newRepoDB(t, &domain.Product{})
	seedProduct(t, db, "Frontal Galaxy S20", "Galaxy S20", 2, 189.9)
	seedProduct(t, db, "Bateria Galaxy S20", "Galaxy S20", 9, 89.9)
	seedProduct(t, db, "Frontal iPhone 12", "iPhone 12", 4, 349.9)

	got, err := SearchProducts(context.Background(), db, "galaxy s20", "")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	// quantity descending: bateria (9) before frontal (2)
	if got[0].Name != "Bateria Galaxy S20" || got[1].Name != "Frontal Galaxy S20" {
		t.Fatalf("unexpected order: %q, %q", got[0].Name, got[1].Name)
	}

	// both filters combined
	got, err = SearchProducts(context.Background(), db, "galaxy s20", "frontal")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Frontal Galaxy S20" {
		t.Fatalf("unexpected combined result: %+v", got)
	}
}

func TestSearchProducts_ExcludesOutOfStock(t *testing.T) {
	db := newRepoDB(t, &domain.Product{})
	seedProduct(t, db, "Frontal Galaxy S21", "Galaxy S21", 0, 219.9)
	seedProduct(t, db, "Bateria Galaxy S21", "Galaxy S21", 1, 99.9)

	got, err := SearchProducts(context.Background(), db, "galaxy s21", "")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Bateria Galaxy S21" {
		t.Fatalf("zero-stock row leaked: %+v", got)
	}
}

func TestSearchProducts_CapsResults(t *testing.T) {
	db := newRepoDB(t, &domain.Product{})
	for i := 1; i <= 5; i++ {
		seedProduct(t, db, fmt.Sprintf("Frontal v%d", i), "Redmi Note 11", i, 50)
	}
	got, err := SearchProducts(context.Background(), db, "redmi note 11", "")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(got) != maxSearchResults {
		t.Fatalf("expected %d rows, got %d", maxSearchResults, len(got))
	}
	if got[0].Quantity != 5 {
		t.Fatalf("expected highest-stock first, got quantity %d", got[0].Quantity)
	}
}

func TestProductCRUD(t *testing.T) {
	db := newRepoDB(t, &domain.Product{})
	ctx := context.Background()

	p := seedProduct(t, db, "Frontal Galaxy S20", "Galaxy S20", 5, 189.9)
	if p.ID == "" {
		t.Fatal("CreateProduct did not assign an id")
	}

	got, err := GetProduct(ctx, db, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Name != p.Name || got.Price != p.Price {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	p.Quantity = 3
	p.Price = 179.9
	if err := UpdateProduct(ctx, db, p); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	got, _ = GetProduct(ctx, db, p.ID)
	if got.Quantity != 3 || got.Price != 179.9 {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := DeleteProduct(ctx, db, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := GetProduct(ctx, db, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestProductMutations_MissingRow(t *testing.T) {
	db := newRepoDB(t, &domain.Product{})
	ctx := context.Background()

	if err := UpdateProduct(ctx, db, &domain.Product{ID: "nope"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateProduct: expected ErrNotFound, got %v", err)
	}
	if err := DeleteProduct(ctx, db, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteProduct: expected ErrNotFound, got %v", err)
	}
}

func TestListProductsPage(t *testing.T) {
	db := newRepoDB(t, &domain.Product{})
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		p := &domain.Product{
			Name:        fmt.Sprintf("p%d", i),
			DeviceModel: "m",
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		if err := CreateProduct(ctx, db, p); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}

	total, err := CountProducts(ctx, db)
	if err != nil || total != 3 {
		t.Fatalf("CountProducts = %d, %v", total, err)
	}

	page, err := ListProductsPage(ctx, db, 0, 2)
	if err != nil {
		t.Fatalf("ListProductsPage: %v", err)
	}
	if len(page) != 2 || page[0].Name != "p2" || page[1].Name != "p1" {
		t.Fatalf("unexpected page order: %+v", page)
	}
}
