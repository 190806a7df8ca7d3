package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/server/http/dto"
	"github.com/gebeyahq/marketadmin/internal/usecase"
)

// OrderHandler manages order settlement endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// UpdatePaymentStatus handles PATCH /api/orders/:id/payment-status. The two
// supported transitions are the merchant payout and the refund.
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.OrderPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	switch model.OrderPaymentStatus(req.PaymentStatus) {
	case model.OrderPaymentPaidToMerchant:
		order, err := h.facade.MarkOrderPaidToMerchant(c.Request.Context(), CurrentIdentity(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(*order))
	case model.OrderPaymentRefunded:
		result, err := h.facade.RefundOrderByID(c.Request.Context(), CurrentIdentity(c), id, req.Reason, req.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRefundResponse(result))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported payment status"})
	}
}

// Refund handles POST /api/orders/refund, addressing the order by its
// transaction reference.
func (h *OrderHandler) Refund(c *gin.Context) {
	var req dto.RefundOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.RefundOrder(c.Request.Context(), CurrentIdentity(c), usecase.RefundOrderRequest{
		TxRef:  req.TxRef,
		Reason: req.Reason,
		Amount: req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRefundResponse(result))
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            order.ID,
		MerchantID:    order.MerchantID,
		CustomerName:  order.CustomerName,
		TotalPrice:    order.TotalPrice,
		PaymentStatus: string(order.PaymentStatus),
		TxRef:         order.TxRef,
		TransferRef:   order.TransferRef,
		RefundReason:  order.RefundReason,
	}
}

func toRefundResponse(result *usecase.RefundResult) dto.RefundOrderResponse {
	return dto.RefundOrderResponse{
		Order:           toOrderResponse(*result.Order),
		SkippedProducts: result.SkippedProducts,
		RefundSimulated: result.Simulated,
	}
}
