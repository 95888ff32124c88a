package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appshipping "github.com/shipflow/backend/internal/application/shipping"
	"github.com/shipflow/backend/internal/domain/shared"
	"github.com/shipflow/backend/internal/interfaces/http/dto"
)

// zoneSortColumns lists the columns zone listings may be ordered by.
var zoneSortColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"display_name": true,
}

// ShippingZoneHandler handles shipping zone API endpoints
type ShippingZoneHandler struct {
	BaseHandler
	zoneService *appshipping.ZoneService
	syncService *appshipping.SyncService
}

// NewShippingZoneHandler creates a new ShippingZoneHandler
func NewShippingZoneHandler(
	zoneService *appshipping.ZoneService,
	syncService *appshipping.SyncService,
) *ShippingZoneHandler {
	return &ShippingZoneHandler{
		zoneService: zoneService,
		syncService: syncService,
	}
}

// CreateZoneRequest represents a request to create a custom shipping zone
// @Description	Request body for creating a custom shipping zone
// @Name HandlerCreateZoneRequest
type CreateZoneRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200" example:"Iberian Peninsula"`
	DisplayName string   `json:"display_name" binding:"max=200" example:"Spain & Portugal"`
	Countries   []string `json:"countries" binding:"omitempty,dive,len=2" example:"ES,PT"`
	Regions     []string `json:"regions" example:"Madrid,Lisboa"`
	Cities      []string `json:"cities" example:"Madrid,Porto"`
	ZipCodes    []string `json:"zip_codes" example:"28001,28002"`
}

// UpdateZoneRequest represents a request to update a shipping zone
//
//	@Description	Request body for updating a shipping zone
type UpdateZoneRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200" example:"Iberian Peninsula"`
	DisplayName string   `json:"display_name" binding:"max=200" example:"Spain & Portugal"`
	Countries   []string `json:"countries" binding:"omitempty,dive,len=2" example:"ES,PT"`
	Regions     []string `json:"regions" example:"Madrid,Lisboa"`
	Cities      []string `json:"cities" example:"Madrid,Porto"`
	ZipCodes    []string `json:"zip_codes" example:"28001,28002"`
	IsActive    *bool    `json:"is_active" example:"true"`
}

// List godoc
// @ID           listShippingZones
//
//	@Summary		List shipping zones
//	@Description	Retrieve a paginated list of zones visible to the store: active system zones plus the store's own zones
//	@Tags			shipping-zones
//	@Produce		json
//	@Param			search		query		string	false	"Search term (name)"
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			page_size	query		int		false	"Page size"			default(20)	maximum(100)
//	@Param			order_by	query		string	false	"Order by field"	default(created_at)
//	@Param			order_dir	query		string	false	"Order direction"	Enums(asc, desc)	default(desc)
//	@Success		200			{object}	APIResponse[[]ZoneResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/zones [get]
func (h *ShippingZoneHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.OrderBy != "" && !zoneSortColumns[req.OrderBy] {
		h.BadRequest(c, "Invalid order_by field")
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	zones, total, err := h.zoneService.ListZones(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, toZoneResponses(zones), total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getShippingZoneById
//
//	@Summary		Get shipping zone by ID
//	@Description	Retrieve a single zone visible to the store
//	@Tags			shipping-zones
//	@Produce		json
//	@Param			id	path		string	true	"Zone ID"	format(uuid)
//	@Success		200	{object}	APIResponse[ZoneResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/zones/{id} [get]
func (h *ShippingZoneHandler) Get(c *gin.Context) {
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

	zone, err := h.zoneService.GetZone(c.Request.Context(), storeID, zoneID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toZoneResponse(zone))
}

// Create godoc
// @ID           createShippingZone
//
//	@Summary		Create a custom shipping zone
//	@Description	Create a store-owned shipping zone with geographic coverage
//	@Tags			shipping-zones
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateZoneRequest	true	"Zone creation request"
//	@Success		201		{object}	APIResponse[ZoneResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/zones [post]
func (h *ShippingZoneHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	var req CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zone, err := h.zoneService.CreateZone(c.Request.Context(), storeID, appshipping.CreateZoneRequest{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Countries:   req.Countries,
		Regions:     req.Regions,
		Cities:      req.Cities,
		ZipCodes:    req.ZipCodes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toZoneResponse(zone))
}

// Update godoc
// @ID           updateShippingZone
//
//	@Summary		Update a shipping zone
//	@Description	Update a store-owned shipping zone. System zones are read-only.
//	@Tags			shipping-zones
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Zone ID"	format(uuid)
//	@Param			request	body		UpdateZoneRequest	true	"Zone update request"
//	@Success		200		{object}	APIResponse[ZoneResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/zones/{id} [put]
func (h *ShippingZoneHandler) Update(c *gin.Context) {
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

	var req UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zone, err := h.zoneService.UpdateZone(c.Request.Context(), storeID, zoneID, appshipping.UpdateZoneRequest{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Countries:   req.Countries,
		Regions:     req.Regions,
		Cities:      req.Cities,
		ZipCodes:    req.ZipCodes,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toZoneResponse(zone))
}

// Delete godoc
// @ID           deleteShippingZone
//
//	@Summary		Delete a shipping zone
//	@Description	Delete a store-owned shipping zone and its rates. System zones are read-only.
//	@Tags			shipping-zones
//	@Produce		json
//	@Param			id	path	string	true	"Zone ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/zones/{id} [delete]
func (h *ShippingZoneHandler) Delete(c *gin.Context) {
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

	if err := h.zoneService.DeleteZone(c.Request.Context(), storeID, zoneID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Duplicate godoc
// @ID           duplicateSystemZone
//
//	@Summary		Duplicate a system zone
//	@Description	Copy a system zone into the store as an editable custom zone
//	@Tags			shipping-zones
//	@Produce		json
//	@Param			id				path		string	true	"System zone ID"	format(uuid)
//	@Success		201				{object}	APIResponse[ZoneResponse]
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/zones/{id}/duplicate [post]
func (h *ShippingZoneHandler) Duplicate(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	systemZoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	zone, err := h.zoneService.DuplicateSystemZone(c.Request.Context(), storeID, systemZoneID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toZoneResponse(zone))
}

// PendingUpdates godoc
// @ID           getZonePendingUpdates
//
//	@Summary		List pending system updates for a zone
//	@Description	List system-side changes recorded since the store copy last synced
//	@Tags			shipping-zones
//	@Produce		json
//	@Param			id	path		string	true	"Zone ID"	format(uuid)
//	@Success		200	{object}	APIResponse[[]PendingUpdateResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/zones/{id}/pending-updates [get]
func (h *ShippingZoneHandler) PendingUpdates(c *gin.Context) {
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

	entries, err := h.syncService.GetPendingUpdates(c.Request.Context(), storeID, zoneID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toPendingUpdateResponses(entries))
}

// Sync godoc
// @ID           syncZone
//
//	@Summary		Sync a zone copy with its system source
//	@Description	Pull system-side additions into the store copy. Store customizations are preserved.
//	@Tags			shipping-zones
//	@Produce		json
//	@Param			id	path		string	true	"Zone ID"	format(uuid)
//	@Success		200	{object}	APIResponse[SyncResultResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/zones/{id}/sync [post]
func (h *ShippingZoneHandler) Sync(c *gin.Context) {
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

	result, err := h.syncService.Sync(c.Request.Context(), storeID, zoneID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toSyncResultResponse(result))
}
