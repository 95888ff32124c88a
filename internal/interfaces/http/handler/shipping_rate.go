package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appshipping "github.com/shipflow/backend/internal/application/shipping"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// ShippingRateHandler handles shipping rate API endpoints
type ShippingRateHandler struct {
	BaseHandler
	zoneService *appshipping.ZoneService
}

// NewShippingRateHandler creates a new ShippingRateHandler
func NewShippingRateHandler(zoneService *appshipping.ZoneService) *ShippingRateHandler {
	return &ShippingRateHandler{
		zoneService: zoneService,
	}
}

// RatePricingRequest carries the nullable pricing fields of a rate
// @Description	Pricing fields for a shipping rate, interpreted per rate type
// @Name HandlerRatePricingRequest
type RatePricingRequest struct {
	BaseCost              *decimal.Decimal `json:"base_cost" example:"4.99"`
	PerUnitCost           *decimal.Decimal `json:"per_unit_cost" example:"0.50"`
	MinVal                *decimal.Decimal `json:"min_val" example:"0"`
	MaxVal                *decimal.Decimal `json:"max_val" example:"30"`
	FreeShippingThreshold *decimal.Decimal `json:"free_shipping_threshold" example:"50"`
}

// CreateRateRequest represents a request to create a custom rate on a zone
//
//	@Description	Request body for creating a custom shipping rate
type CreateRateRequest struct {
	MethodID string             `json:"method_id" binding:"required,uuid" example:"8f2b5a1e-0c3d-4e6f-9a7b-1c2d3e4f5a6b"`
	Name     string             `json:"name" binding:"required,min=1,max=200" example:"Standard up to 5kg"`
	Type     string             `json:"type" binding:"required,oneof=flat weight_based price_based free" example:"weight_based"`
	Pricing  RatePricingRequest `json:"pricing"`
}

// UpdateRateRequest represents a request to update a rate
//
//	@Description	Request body for updating a shipping rate
type UpdateRateRequest struct {
	Name     string             `json:"name" binding:"required,min=1,max=200" example:"Standard up to 5kg"`
	Type     string             `json:"type" binding:"required,oneof=flat weight_based price_based free" example:"weight_based"`
	Pricing  RatePricingRequest `json:"pricing"`
	IsActive *bool              `json:"is_active" example:"true"`
}

// DuplicateRateRequest represents a request to copy a system rate into a store zone
//
//	@Description	Request body for duplicating a system rate
type DuplicateRateRequest struct {
	TargetZoneID string `json:"target_zone_id" binding:"required,uuid" example:"3d1c9f2a-7b4e-4c8d-a5f6-0e1b2c3d4e5f"`
}

func (r RatePricingRequest) toPricing() appshipping.RatePricing {
	return appshipping.RatePricing{
		BaseCost:              r.BaseCost,
		PerUnitCost:           r.PerUnitCost,
		MinVal:                r.MinVal,
		MaxVal:                r.MaxVal,
		FreeShippingThreshold: r.FreeShippingThreshold,
	}
}

// ListByZone godoc
// @ID           listZoneRates
//
//	@Summary		List rates for a zone
//	@Description	Retrieve all rates defined on a zone visible to the store
//	@Tags			shipping-rates
//	@Produce		json
//	@Param			id	path		string	true	"Zone ID"	format(uuid)
//	@Success		200	{object}	APIResponse[[]RateResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/zones/{id}/rates [get]
func (h *ShippingRateHandler) ListByZone(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	rates, err := h.zoneService.ListRates(c.Request.Context(), storeID, zoneID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toRateResponses(rates))
}

// Create godoc
// @ID           createZoneRate
//
//	@Summary		Create a custom rate on a zone
//	@Description	Create a custom rate on a store-owned zone. System zones are read-only.
//	@Tags			shipping-rates
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Zone ID"	format(uuid)
//	@Param			request	body		CreateRateRequest	true	"Rate creation request"
//	@Success		201		{object}	APIResponse[RateResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/zones/{id}/rates [post]
func (h *ShippingRateHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	var req CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	methodID, err := uuid.Parse(req.MethodID)
	if err != nil {
		h.BadRequest(c, "Invalid method ID format")
		return
	}

	rate, err := h.zoneService.CreateRate(c.Request.Context(), storeID, zoneID, appshipping.CreateRateRequest{
		MethodID: methodID,
		Name:     req.Name,
		Type:     shipping.RateType(req.Type),
		Pricing:  req.Pricing.toPricing(),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toRateResponse(rate))
}

// Update godoc
// @ID           updateShippingRate
//
//	@Summary		Update a shipping rate
//	@Description	Update a store-owned rate. System rates are read-only.
//	@Tags			shipping-rates
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Rate ID"	format(uuid)
//	@Param			request	body		UpdateRateRequest	true	"Rate update request"
//	@Success		200		{object}	APIResponse[RateResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/rates/{id} [put]
func (h *ShippingRateHandler) Update(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	rateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rate ID format")
		return
	}

	var req UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := h.zoneService.UpdateRate(c.Request.Context(), storeID, rateID, appshipping.UpdateRateRequest{
		Name:     req.Name,
		Type:     shipping.RateType(req.Type),
		Pricing:  req.Pricing.toPricing(),
		IsActive: req.IsActive,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toRateResponse(rate))
}

// Delete godoc
// @ID           deleteShippingRate
//
//	@Summary		Delete a shipping rate
//	@Description	Delete a store-owned rate. System rates are read-only.
//	@Tags			shipping-rates
//	@Produce		json
//	@Param			id	path	string	true	"Rate ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/rates/{id} [delete]
func (h *ShippingRateHandler) Delete(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	rateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rate ID format")
		return
	}

	if err := h.zoneService.DeleteRate(c.Request.Context(), storeID, rateID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Duplicate godoc
// @ID           duplicateSystemRate
//
//	@Summary		Duplicate a system rate
//	@Description	Copy a system rate into a store-owned zone as an editable custom rate
//	@Tags			shipping-rates
//	@Accept			json
//	@Produce		json
//	@Param			id				path		string					true	"System rate ID"	format(uuid)
//	@Param			request			body		DuplicateRateRequest	true	"Duplication target"
//	@Success		201				{object}	APIResponse[RateResponse]
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/rates/{id}/duplicate [post]
func (h *ShippingRateHandler) Duplicate(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	systemRateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rate ID format")
		return
	}

	var req DuplicateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	targetZoneID, err := uuid.Parse(req.TargetZoneID)
	if err != nil {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	rate, err := h.zoneService.DuplicateSystemRate(c.Request.Context(), storeID, systemRateID, targetZoneID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toRateResponse(rate))
}
