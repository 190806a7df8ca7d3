package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/server/http/dto"
	"github.com/gebeyahq/marketadmin/internal/usecase"
)

// AuctionHandler manages auction submission and moderation endpoints.
type AuctionHandler struct {
	facade AuctionFacade
}

// NewAuctionHandler constructs AuctionHandler.
func NewAuctionHandler(facade AuctionFacade) *AuctionHandler {
	return &AuctionHandler{facade: facade}
}

// Submit handles POST /api/auctions.
func (h *AuctionHandler) Submit(c *gin.Context) {
	var req dto.AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	auction, err := h.facade.SubmitAuction(c.Request.Context(), CurrentIdentity(c), usecase.AuctionRequest{
		ProductID:     req.ProductID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		StartingPrice: req.StartingPrice,
		ReservedPrice: req.ReservedPrice,
		BidIncrement:  req.BidIncrement,
		TotalQuantity: req.TotalQuantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAuctionResponse(*auction))
}

// Approve handles POST /api/auctions/:id/approve.
func (h *AuctionHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	auction, err := h.facade.ApproveAuction(c.Request.Context(), CurrentIdentity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAuctionResponse(*auction))
}

// Reject handles POST /api/auctions/:id/reject.
func (h *AuctionHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	auction, err := h.facade.RejectAuction(c.Request.Context(), CurrentIdentity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAuctionResponse(*auction))
}

func toAuctionResponse(a model.Auction) dto.AuctionResponse {
	return dto.AuctionResponse{
		ID:                a.ID,
		MerchantID:        a.MerchantID,
		ProductID:         a.ProductID,
		StartTime:         a.StartTime,
		EndTime:           a.EndTime,
		StartingPrice:     a.StartingPrice,
		ReservedPrice:     a.ReservedPrice,
		BidIncrement:      a.BidIncrement,
		TotalQuantity:     a.TotalQuantity,
		RemainingQuantity: a.RemainingQuantity,
		Status:            string(a.Status),
		AdminApproval:     string(a.AdminApproval),
	}
}
