package orders

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gamevault-backend/internal/platform/httpx"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/orders", h.List)
	r.POST("/orders", h.Place)
}

func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /orders  (JSON or form fields, all as text)
func (h *Handler) Place(c *gin.Context) {
	var f OrderForm
	if err := c.ShouldBind(&f); err != nil {
		httpx.BadJSON(c)
		return
	}
	id, err := h.svc.PlaceOrderForm(c.Request.Context(), f)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.Header("Location", "/orders/"+strconv.FormatInt(id, 10))
	c.JSON(http.StatusCreated, PlaceOrderResponse{OrderID: id})
}
