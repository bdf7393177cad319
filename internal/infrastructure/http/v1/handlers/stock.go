package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmstock/internal/domain/ledger"
	"pharmstock/internal/infrastructure/export"
	"pharmstock/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for the stock ledger.
type StockHandler struct {
	*BaseHandler
	engine *ledger.Engine
}

// NewStockHandler creates a new stock ledger handler.
func NewStockHandler(base *BaseHandler, engine *ledger.Engine) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		engine:      engine,
	}
}

// GetPositions handles GET /api/v1/stock/positions.
// Returns one sorted page of computed positions plus the full-set summary
// and total count.
func (h *StockHandler) GetPositions(c *gin.Context) {
	var req dto.StockQueryRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filters, err := req.Filters()
	if err != nil {
		h.Error(c, err)
		return
	}
	sortSpec, err := req.Sort()
	if err != nil {
		h.Error(c, err)
		return
	}

	page, err := h.engine.Query(c.Request.Context(), filters, sortSpec, req.Page())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockPage(page))
}

// GetSummary handles GET /api/v1/stock/summary.
func (h *StockHandler) GetSummary(c *gin.Context) {
	var req dto.StockQueryRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filters, err := req.Filters()
	if err != nil {
		h.Error(c, err)
		return
	}

	summary, err := h.engine.ComputeSummary(c.Request.Context(), filters)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockSummary(summary))
}

// Export handles GET /api/v1/stock/export.
// Streams the full (unpaginated) filtered position set as an xlsx workbook.
func (h *StockHandler) Export(c *gin.Context) {
	var req dto.StockQueryRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filters, err := req.Filters()
	if err != nil {
		h.Error(c, err)
		return
	}
	sortSpec, err := req.Sort()
	if err != nil {
		h.Error(c, err)
		return
	}

	views, err := h.engine.ComputeStockPositions(c.Request.Context(), filters)
	if err != nil {
		h.Error(c, err)
		return
	}
	summary := ledger.Summarize(views)
	ledger.SortViews(views, sortSpec)

	filename := fmt.Sprintf("stock-positions-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := export.WriteStockXLSX(c.Writer, views, summary); err != nil {
		// Headers are already out; log via the error middleware is pointless
		// here, so record it for the request logger only.
		_ = c.Error(err)
	}
}
