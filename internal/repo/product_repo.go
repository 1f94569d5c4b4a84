// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Product
// catalog: the pipeline's stock search plus the CRUD used by the admin API.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/assistec/go-whats-backend/internal/domain"
)

// maxSearchResults caps how many catalog rows a single pipeline lookup
// returns. The orchestrator only uses the first (highest-stock) row; the
// rest feed the conversational context.
const maxSearchResults = 3

// SearchProducts returns in-stock products whose device-model field contains
// the model term and/or whose name contains the part term. Both filters are
// applied when both terms are present. Results are ordered by quantity
// descending and capped at maxSearchResults.
//
// Terms are matched as case-insensitive substrings; callers are expected to
// pass terms already normalized by catalog.NormalizeSearchTerm. When both
// terms are empty the search short-circuits to an empty slice.
func SearchProducts(ctx context.Context, db *gorm.DB, model, part string) ([]domain.Product, error) {
	model = strings.TrimSpace(model)
	part = strings.TrimSpace(part)
	if model == "" && part == "" {
		return []domain.Product{}, nil
	}

	q := db.WithContext(ctx).Model(&domain.Product{})
	if model != "" {
		q = q.Where("LOWER(modelo_aparelho) LIKE ?", "%"+strings.ToLower(model)+"%")
	}
	if part != "" {
		q = q.Where("LOWER(nome) LIKE ?", "%"+strings.ToLower(part)+"%")
	}

	var out []domain.Product
	err := q.
		Where("quantidade > 0").
		Order("quantidade DESC").
		Limit(maxSearchResults).
		Find(&out).Error
	if out == nil {
		out = []domain.Product{}
	}
	return out, err
}

// CreateProduct inserts a new catalog row.
func CreateProduct(ctx context.Context, db *gorm.DB, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(p).Error
}

// GetProduct fetches a product by ID.
func GetProduct(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct overwrites an existing catalog row.
func UpdateProduct(ctx context.Context, db *gorm.DB, p *domain.Product) error {
	res := db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"nome":            p.Name,
		"modelo_aparelho": p.DeviceModel,
		"descricao":       p.Description,
		"preco":           p.Price,
		"quantidade":      p.Quantity,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a catalog row by ID.
func DeleteProduct(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountProducts returns the total number of catalog rows for pagination.
func CountProducts(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Product{}).Count(&total).Error
	return total, err
}

// ListProductsPage returns a page of catalog rows, newest first.
func ListProductsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
