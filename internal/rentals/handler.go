package rentals

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gamevault-backend/internal/platform/httpx"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/rentals/active", h.ListActive)
	r.GET("/rentals/active/count", h.ActiveCount)
	r.GET("/rentals/history", h.ListHistory)
	r.POST("/rentals/:id/return", h.MarkReturned)
}

func (h *Handler) ListActive(c *gin.Context) {
	list, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	res := ActiveRentalsResponse{Count: len(list), Rentals: list}
	for _, r := range list {
		if r.IsOverdue {
			res.Overdue++
		}
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ActiveCount(c *gin.Context) {
	n, err := h.svc.ActiveCount(c.Request.Context())
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *Handler) ListHistory(c *gin.Context) {
	res, err := h.svc.ListHistory(c.Request.Context())
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /rentals/:id/return
// 呼び出し側は active / history の両方を再取得すること
func (h *Handler) MarkReturned(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	if err := h.svc.MarkReturned(c.Request.Context(), id); err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
