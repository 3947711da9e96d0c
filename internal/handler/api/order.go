package api

import (
	"errors"
	"net/http"

	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderQueries queries.OrderQueries
}

func NewOrderHandler(orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orderQueries: orderQueries,
	}
}

// @Summary Get order
// @Description Fetch a persisted order scoped to the requesting store
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param X-Store-Number header string true "Store acting on the request"
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	store, ok := middleware.GetStoreNumber(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_ORDER_ID", "Invalid order id", nil)
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), id, store)
	if err != nil {
		if errors.Is(err, queries.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "ORDER_NOT_FOUND", "Order not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}
