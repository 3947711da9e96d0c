package api

import (
	"errors"
	"net/http"

	reqdto "storefront-checkout/internal/handler/dto/request"
	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutUseCase commands.CheckoutCommands
}

func NewCheckoutHandler(checkoutUseCase commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

// @Summary Initiate checkout
// @Description Snapshot the cart, validate it, reserve fulfillment capacity and open a checkout session
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Store-Number header string true "Store acting on the checkout"
// @Param X-Order-Number header string false "Pre-assigned order number"
// @Param request body reqdto.InitiateCheckoutRequest true "Checkout initiation request"
// @Success 201 {object} resdto.CheckoutSessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /checkout/initiate [post]
func (h *CheckoutHandler) InitiateCheckout(c *gin.Context) {
	meta, ok := middleware.GetRequestMeta(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.InitiateCheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "INVALID_REQUEST", "Invalid request format", nil)
		return
	}

	params := commands.InitiateCheckoutParams{
		CartID:          req.CartID,
		FulfillmentType: checkout.FulfillmentType(req.FulfillmentType),
		FulfillmentDate: req.FulfillmentDate,
		DeliveryAddress: req.DeliveryAddress,
		Instructions:    req.Instructions,
	}

	summary, err := h.checkoutUseCase.InitiateCheckout(c.Request.Context(), params, meta)
	if err != nil {
		h.handleInitiateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutSummary(summary))
}

// @Summary Complete checkout
// @Description Take payment for an open checkout session and persist the order
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Store-Number header string true "Store acting on the checkout"
// @Param request body reqdto.CompleteCheckoutRequest true "Checkout completion request"
// @Success 201 {object} resdto.OrderCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /checkout/complete [post]
func (h *CheckoutHandler) CompleteCheckout(c *gin.Context) {
	meta, ok := middleware.GetRequestMeta(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CompleteCheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "INVALID_REQUEST", "Invalid request format", nil)
		return
	}

	params := commands.CompleteCheckoutParams{
		SessionID:      req.SessionID,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
	}

	result, err := h.checkoutUseCase.CompleteCheckout(c.Request.Context(), params, meta)
	if err != nil {
		h.handleCompleteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromOrderResult(result))
}

func (h *CheckoutHandler) handleInitiateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrCartNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "CART_NOT_FOUND", "Cart not found", nil)
	case errors.Is(err, commands.ErrCartValidationFailed):
		var ve *commands.CartValidationError
		var detail any
		if errors.As(err, &ve) {
			detail = ve.Violations
		}
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "CART_VALIDATION_FAILED", "Cart is not eligible for checkout", detail)
	case errors.Is(err, commands.ErrInvalidDiscount):
		var de *commands.InvalidDiscountError
		var detail any
		if errors.As(err, &de) {
			detail = de.Codes
		}
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "INVALID_DISCOUNT", "One or more discount codes are invalid", detail)
	case errors.Is(err, commands.ErrFulfillmentUnavailable):
		var fe *commands.FulfillmentUnavailableError
		var detail any
		if errors.As(err, &fe) {
			detail = fe.Items
		}
		httperr.AbortWithError(c, http.StatusConflict, err, "FULFILLMENT_UNAVAILABLE", "Requested items cannot be reserved", detail)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

func (h *CheckoutHandler) handleCompleteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSessionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "SESSION_NOT_FOUND", "Checkout session not found", nil)
	case errors.Is(err, commands.ErrSessionStoreMismatch):
		httperr.AbortWithError(c, http.StatusForbidden, err, "SESSION_STORE_MISMATCH", "Checkout session belongs to another store", nil)
	case errors.Is(err, commands.ErrSessionExpired):
		httperr.AbortWithError(c, http.StatusGone, err, "SESSION_EXPIRED", "Checkout session has expired", nil)
	case errors.Is(err, commands.ErrPaymentFailed):
		var pe *commands.PaymentDeclinedError
		var detail any
		if errors.As(err, &pe) {
			detail = gin.H{"message": pe.Message}
		}
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "PAYMENT_DECLINED", "Payment was declined", detail)
	case errors.Is(err, commands.ErrPaymentIndeterminate):
		httperr.AbortWithError(c, http.StatusGatewayTimeout, err, "PAYMENT_INDETERMINATE", "Payment outcome could not be confirmed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
