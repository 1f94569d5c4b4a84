package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assistec/go-whats-backend/internal/domain"
	"github.com/assistec/go-whats-backend/internal/repo"
)

// ListLogsResponse contains a page of message logs (newest first) and
// pagination metadata.
type ListLogsResponse struct {
	Logs       []domain.MessageLog `json:"logs"`
	Pagination Pagination          `json:"pagination"`
}

// ListLogs handles GET /logs. The log table is append-only, so this is the
// only read surface besides the status counters.
func (h *Handlers) ListLogs(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	total, err := repo.CountMessageLogs(ctx, h.db)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	items := []domain.MessageLog{}
	if total > 0 {
		items, err = repo.ListMessageLogsPage(ctx, h.db, (page-1)*pageSize, pageSize)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListLogsResponse{
		Logs: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
