// Product HTTP handlers.
//
// This file exposes the catalog CRUD consumed by the administrative
// dashboard:
//   - GET    /products      (paginated list, newest first)
//   - POST   /products      (create)
//   - GET    /products/:id  (fetch)
//   - PUT    /products/:id  (update)
//   - DELETE /products/:id  (delete)
//
// The pipeline reads the same table through repo.SearchProducts; these
// endpoints are its only writers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/assistec/go-whats-backend/internal/domain"
	"github.com/assistec/go-whats-backend/internal/repo"
	"github.com/assistec/go-whats-backend/internal/services"
	"github.com/assistec/go-whats-backend/internal/utils"
)

// PriceValue accepts a price either as a JSON number or as a Brazilian
// locale-formatted string ("189,90"), which is what the dashboard's form
// fields submit.
type PriceValue float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *PriceValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		v, err := services.ParsePrice(raw)
		if err != nil {
			return fmt.Errorf("invalid price %q", raw)
		}
		*p = PriceValue(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = PriceValue(v)
	return nil
}

// ProductRequest is the JSON payload for creating or updating a product.
// Field names match the persisted column names used by the dashboard.
type ProductRequest struct {
	Name        string     `json:"nome" binding:"required,min=1"`
	DeviceModel string     `json:"modelo_aparelho" binding:"required,min=1"`
	Description string     `json:"descricao"`
	Price       PriceValue `json:"preco"`
	Quantity    int        `json:"quantidade" binding:"min=0"`
}

// ListProductsResponse contains a page of products and pagination metadata.
type ListProductsResponse struct {
	Products   []domain.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// clampPagination parses page/page_size query parameters with defaults and caps.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// ListProducts handles GET /products.
func (h *Handlers) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	total, err := repo.CountProducts(ctx, h.db)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	items := []domain.Product{}
	if total > 0 {
		items, err = repo.ListProductsPage(ctx, h.db, (page-1)*pageSize, pageSize)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListProductsResponse{
		Products: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// CreateProduct handles POST /products.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "nome and modelo_aparelho are required; quantidade must be >= 0")
		return
	}
	if req.Price < 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "preco must be >= 0")
		return
	}

	p := &domain.Product{
		Name:        strings.TrimSpace(req.Name),
		DeviceModel: strings.TrimSpace(req.DeviceModel),
		Description: strings.TrimSpace(req.Description),
		Price:       float64(req.Price),
		Quantity:    req.Quantity,
	}
	if err := repo.CreateProduct(c.Request.Context(), h.db, p); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, p)
}

// GetProduct handles GET /products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "product id must be a UUID")
		return
	}

	p, err := repo.GetProduct(c.Request.Context(), h.db, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdateProduct handles PUT /products/:id.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "product id must be a UUID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "nome and modelo_aparelho are required; quantidade must be >= 0")
		return
	}
	if req.Price < 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "preco must be >= 0")
		return
	}

	p := &domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		DeviceModel: strings.TrimSpace(req.DeviceModel),
		Description: strings.TrimSpace(req.Description),
		Price:       float64(req.Price),
		Quantity:    req.Quantity,
	}
	if err := repo.UpdateProduct(c.Request.Context(), h.db, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

// DeleteProduct handles DELETE /products/:id.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "product id must be a UUID")
		return
	}

	if err := repo.DeleteProduct(c.Request.Context(), h.db, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	noContent(c)
}
