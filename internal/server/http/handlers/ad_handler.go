package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/server/http/dto"
	"github.com/gebeyahq/marketadmin/internal/usecase"
)

// AdHandler manages placement endpoints.
type AdHandler struct {
	facade AdFacade
}

// NewAdHandler constructs AdHandler.
func NewAdHandler(facade AdFacade) *AdHandler {
	return &AdHandler{facade: facade}
}

// Submit handles POST /api/ads.
func (h *AdHandler) Submit(c *gin.Context) {
	var req dto.PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.SubmitPlacement(c.Request.Context(), CurrentIdentity(c), usecase.PlacementRequest{
		ProductID:     req.ProductID,
		ProductName:   req.ProductName,
		ProductPrice:  req.ProductPrice,
		MerchantID:    req.MerchantID,
		MerchantName:  req.MerchantName,
		MerchantEmail: req.MerchantEmail,
		MerchantPhone: req.MerchantPhone,
		Price:         req.Price,
		Location:      model.Point{Longitude: req.Location.Longitude, Latitude: req.Location.Latitude},
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PlacementResponse{
		Ad:                toAdResponse(*result.Ad),
		CheckoutURL:       result.CheckoutURL,
		PaymentInitFailed: result.PaymentInitFailed,
	})
}

// List handles GET /api/ads.
func (h *AdHandler) List(c *gin.Context) {
	query := usecase.AdQuery{Page: 1, Limit: 20}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		query.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		query.Limit = limit
	}
	if raw := c.Query("approval_status"); raw != "" {
		status := model.AdApprovalStatus(raw)
		query.ApprovalStatus = &status
	}

	lngRaw, latRaw := c.Query("longitude"), c.Query("latitude")
	if lngRaw != "" && latRaw != "" {
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		if lngErr != nil || latErr != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		query.Center = &model.Point{Longitude: lng, Latitude: lat}
		if radiusRaw := c.Query("radius"); radiusRaw != "" {
			radius, err := strconv.ParseFloat(radiusRaw, 64)
			if err != nil {
				c.Status(http.StatusBadRequest)
				return
			}
			query.RadiusMeters = radius
		}
	}

	listing, err := h.facade.ListPlacements(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.AdResponse, 0, len(listing.Items))
	for _, ad := range listing.Items {
		items = append(items, toAdResponse(ad))
	}
	c.JSON(http.StatusOK, dto.AdListResponse{
		Items:       items,
		CurrentPage: listing.CurrentPage,
		TotalPages:  listing.TotalPages,
		TotalCount:  listing.TotalCount,
	})
}

// Approve handles POST /api/ads/:id/approve.
func (h *AdHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	ad, err := h.facade.ApprovePlacement(c.Request.Context(), CurrentIdentity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAdResponse(*ad))
}

// Reject handles POST /api/ads/:id/reject.
func (h *AdHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.RejectAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.RejectPlacement(c.Request.Context(), CurrentIdentity(c), id, usecase.RejectAdRequest{
		Code:   req.Code,
		Note:   req.Note,
		Amount: req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RejectAdResponse{
		Ad:              toAdResponse(*result.Ad),
		RefundFailed:    result.RefundFailed,
		RefundSimulated: result.RefundSimulated,
	})
}

// PaymentCallback handles POST /api/ads/payment/callback.
func (h *AdHandler) PaymentCallback(c *gin.Context) {
	var req dto.PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TxRef == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	status := model.AdPaymentFailed
	if req.Status == "success" {
		status = model.AdPaymentPaid
	}

	ad, err := h.facade.ConfirmPlacementPayment(c.Request.Context(), req.TxRef, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAdResponse(*ad))
}

func toAdResponse(ad model.Ad) dto.AdResponse {
	return dto.AdResponse{
		ID:             ad.ID,
		ProductID:      ad.ProductID,
		ProductName:    ad.ProductName,
		MerchantID:     ad.MerchantID,
		MerchantName:   ad.MerchantName,
		Price:          ad.Price,
		Location:       dto.PointPayload{Longitude: ad.Location.Longitude, Latitude: ad.Location.Latitude},
		StartsAt:       ad.StartsAt,
		EndsAt:         ad.EndsAt,
		PaymentStatus:  string(ad.PaymentStatus),
		ApprovalStatus: string(ad.ApprovalStatus),
		IsActive:       ad.IsActive,
		RejectionCode:  ad.RejectionCode,
		RejectionNote:  ad.RejectionNote,
		TxRef:          ad.TxRef,
		CreatedAt:      ad.CreatedAt,
	}
}
