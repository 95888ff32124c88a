package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appshipping "github.com/shipflow/backend/internal/application/shipping"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// ShippingMethodHandler handles shipping method provisioning endpoints
type ShippingMethodHandler struct {
	BaseHandler
	methodService       *appshipping.MethodService
	provisioningService *appshipping.ProvisioningService
}

// NewShippingMethodHandler creates a new ShippingMethodHandler
func NewShippingMethodHandler(
	methodService *appshipping.MethodService,
	provisioningService *appshipping.ProvisioningService,
) *ShippingMethodHandler {
	return &ShippingMethodHandler{
		methodService:       methodService,
		provisioningService: provisioningService,
	}
}

// EnableMethodRequest represents a request to enable a system method
// @Description Optional overrides applied when enabling a shipping method
// @Name HandlerEnableMethodRequest
type EnableMethodRequest struct {
	DisplayName    string           `json:"display_name" binding:"max=200" example:"Express"`
	CustomConfig   string           `json:"custom_config" example:"{}"`
	DisplayOrder   *int             `json:"display_order" example:"0"`
	MinOrderAmount *decimal.Decimal `json:"min_order_amount" example:"10"`
	MaxOrderAmount *decimal.Decimal `json:"max_order_amount" example:"500"`
}

// UpdateMethodMetadataRequest represents a request to update enablement metadata
// @Description Display metadata changes that do not touch enablement state
// @Name HandlerUpdateMethodMetadataRequest
type UpdateMethodMetadataRequest struct {
	DisplayName  string `json:"display_name" binding:"max=200" example:"Express 24h"`
	CustomConfig string `json:"custom_config" example:"{}"`
}

// ReorderMethodsRequest represents a request to reorder enabled methods
// @Description Ordered list of store method IDs defining the new display order
// @Name HandlerReorderMethodsRequest
type ReorderMethodsRequest struct {
	OrderedIDs []string `json:"ordered_ids" binding:"required,min=1,dive,uuid"`
}

// ListAvailable godoc
// @ID           listAvailableShippingMethods
//
//	@Summary		List available system shipping methods
//	@Description	List the active platform-wide shipping methods a store can enable
//	@Tags			shipping-methods
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]MethodResponse]
//	@Failure		500	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/methods/available [get]
func (h *ShippingMethodHandler) ListAvailable(c *gin.Context) {
	methods, err := h.methodService.ListAvailableMethods(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	out := make([]MethodResponse, 0, len(methods))
	for i := range methods {
		out = append(out, toMethodResponse(&methods[i]))
	}
	h.Success(c, out)
}

// List godoc
// @ID           listStoreShippingMethods
//
//	@Summary		List the store's shipping methods
//	@Description	List the store's enablement records ordered by display order
//	@Tags			shipping-methods
//	@Produce		json
//	@Param			X-Store-ID	header		string	false	"Store ID (optional for dev)"
//	@Success		200			{object}	APIResponse[[]StoreMethodResponse]
//	@Failure		401			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/methods [get]
func (h *ShippingMethodHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	views, err := h.methodService.ListStoreMethods(c.Request.Context(), storeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	out := make([]StoreMethodResponse, 0, len(views))
	for _, view := range views {
		out = append(out, toStoreMethodResponse(view.StoreMethod, view.SystemMethod))
	}
	h.Success(c, out)
}

// Enable godoc
// @ID           enableShippingMethod
//
//	@Summary		Enable a system shipping method
//	@Description	Enable a system method for the store. First-time enables copy the method's system zones and rates; re-enables reactivate the previous copies.
//	@Tags			shipping-methods
//	@Accept			json
//	@Produce		json
//	@Param			id				path		string				true	"System method ID"
//	@Param			request			body		EnableMethodRequest	false	"Enable overrides"
//	@Success		201				{object}	APIResponse[EnableResultResponse]
//	@Failure		400				{object}	ErrorResponse
//	@Failure		409				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/methods/{id}/enable [post]
func (h *ShippingMethodHandler) Enable(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	systemMethodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid system method ID")
		return
	}

	var req EnableMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.BadRequest(c, err.Error())
		return
	}

	opts := shipping.EnableOptions{
		DisplayName:    req.DisplayName,
		CustomConfig:   req.CustomConfig,
		DisplayOrder:   req.DisplayOrder,
		MinOrderAmount: req.MinOrderAmount,
		MaxOrderAmount: req.MaxOrderAmount,
	}

	result, err := h.provisioningService.Enable(c.Request.Context(), storeID, systemMethodID, opts)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toEnableResultResponse(result))
}

// Disable godoc
// @ID           disableShippingMethod
//
//	@Summary		Disable a shipping method
//	@Description	Disable an enabled store method. Copied zones and rates are kept for re-enable.
//	@Tags			shipping-methods
//	@Produce		json
//	@Param			id	path		string	true	"Store method ID"
//	@Success		200	{object}	APIResponse[StoreMethodResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/methods/{id}/disable [post]
func (h *ShippingMethodHandler) Disable(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	storeMethodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store method ID")
		return
	}

	storeMethod, err := h.provisioningService.Disable(c.Request.Context(), storeID, storeMethodID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toStoreMethodResponse(storeMethod, nil))
}

// Remove godoc
// @ID           removeShippingMethod
//
//	@Summary		Remove a shipping method enablement
//	@Description	Hard-delete the store's enablement record. No history is retained.
//	@Tags			shipping-methods
//	@Param			id	path	string	true	"Store method ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/methods/{id} [delete]
func (h *ShippingMethodHandler) Remove(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	storeMethodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store method ID")
		return
	}

	if err := h.provisioningService.Remove(c.Request.Context(), storeID, storeMethodID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Reorder godoc
// @ID           reorderShippingMethods
//
//	@Summary		Reorder the store's shipping methods
//	@Description	Set the display order of the store's methods to the submitted ID sequence
//	@Tags			shipping-methods
//	@Accept			json
//	@Produce		json
//	@Param			request	body	ReorderMethodsRequest	true	"Ordered store method IDs"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/methods/reorder [put]
func (h *ShippingMethodHandler) Reorder(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	var req ReorderMethodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orderedIDs := make([]uuid.UUID, 0, len(req.OrderedIDs))
	for _, raw := range req.OrderedIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid store method ID in order list")
			return
		}
		orderedIDs = append(orderedIDs, id)
	}

	if err := h.provisioningService.Reorder(c.Request.Context(), storeID, orderedIDs); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// UpdateMetadata godoc
// @ID           updateShippingMethodMetadata
//
//	@Summary		Update shipping method metadata
//	@Description	Update the display name and custom configuration of an enablement record without touching its state
//	@Tags			shipping-methods
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Store method ID"
//	@Param			request	body		UpdateMethodMetadataRequest	true	"Metadata changes"
//	@Success		200		{object}	APIResponse[StoreMethodResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/methods/{id} [put]
func (h *ShippingMethodHandler) UpdateMetadata(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	storeMethodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store method ID")
		return
	}

	var req UpdateMethodMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	storeMethod, err := h.provisioningService.UpdateMetadata(c.Request.Context(), storeID, storeMethodID, req.DisplayName, req.CustomConfig)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toStoreMethodResponse(storeMethod, nil))
}
