package payments

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gamevault-backend/internal/platform/httpx"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// ?from=YYYY-MM-DD&to=YYYY-MM-DD （両方指定時のみ絞り込み）
	r.GET("/payments", h.List)
	r.GET("/payments/summary", h.Summary)
	r.GET("/payments/export.csv", h.ExportCSV)
}

func (h *Handler) load(c *gin.Context) ([]Payment, bool) {
	from, err := httpx.QueryDate(c, "from")
	if err != nil {
		httpx.WriteError(c, err)
		return nil, false
	}
	to, err := httpx.QueryDate(c, "to")
	if err != nil {
		httpx.WriteError(c, err)
		return nil, false
	}
	list, err := h.svc.Range(c.Request.Context(), from, to)
	if err != nil {
		httpx.WriteError(c, err)
		return nil, false
	}
	return list, true
}

func (h *Handler) List(c *gin.Context) {
	list, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Summary(c *gin.Context) {
	list, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, AggregateByMethod(list))
}

func (h *Handler) ExportCSV(c *gin.Context) {
	list, ok := h.load(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, list, AggregateByMethod(list), c.Query("bom") != "false"); err != nil {
		httpx.WriteError(c, err)
		return
	}
	name := "payments_" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
