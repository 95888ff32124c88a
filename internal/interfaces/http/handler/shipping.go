package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appshipping "github.com/shipflow/backend/internal/application/shipping"
	"github.com/shipflow/backend/internal/domain/shipping"
)

// ShippingHandler handles the storefront rate calculation endpoint
type ShippingHandler struct {
	BaseHandler
	calculatorService *appshipping.CalculatorService
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(calculatorService *appshipping.CalculatorService) *ShippingHandler {
	return &ShippingHandler{
		calculatorService: calculatorService,
	}
}

// CalculateLineItem is one cart line in a calculation request
// @Description Cart line with quantity-multiplied weight and price totals
// @Name HandlerCalculateLineItem
type CalculateLineItem struct {
	ProductID string          `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity  int             `json:"quantity" binding:"required,min=1" example:"2"`
	Weight    decimal.Decimal `json:"weight" example:"1.5"`
	Price     decimal.Decimal `json:"price" example:"39.90"`
}

// CalculateAddressRequest is the destination address of a calculation request
// @Description Destination address, already normalized by the checkout flow
// @Name HandlerCalculateAddressRequest
type CalculateAddressRequest struct {
	CountryCode   string `json:"country_code" binding:"required,min=2,max=2" example:"ES"`
	StateProvince string `json:"state_province" binding:"max=100" example:"Madrid"`
	City          string `json:"city" binding:"max=100" example:"Madrid"`
	PostalCode    string `json:"postal_code" binding:"max=20" example:"28001"`
}

// CalculateRatesRequest represents a request to quote shipping options
// @Description Request body for the storefront rate calculation
// @Name HandlerCalculateRatesRequest
type CalculateRatesRequest struct {
	Items   []CalculateLineItem     `json:"items" binding:"required,min=1,dive"`
	Address CalculateAddressRequest `json:"address" binding:"required"`
}

// CalculateRates godoc
// @ID           calculateShippingRates
//
//	@Summary		Calculate shipping options
//	@Description	Resolve the delivery zone for an address and price the zone's rates against the cart. An empty list means the store cannot ship there.
//	@Tags			shipping
//	@Accept			json
//	@Produce		json
//	@Param			X-Store-ID	header		string					false	"Store ID (optional for dev)"
//	@Param			request		body		CalculateRatesRequest	true	"Cart and destination"
//	@Success		200			{object}	APIResponse[[]ShippingOptionResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shipping/calculate [post]
func (h *ShippingHandler) CalculateRates(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.Unauthorized(c, "Store context required")
		return
	}

	var req CalculateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items := make([]appshipping.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return
		}
		items = append(items, appshipping.LineItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Weight:    item.Weight,
			Price:     item.Price,
		})
	}

	appReq := appshipping.CalculateRequest{
		Items: items,
		Address: shipping.Address{
			CountryCode:   req.Address.CountryCode,
			StateProvince: req.Address.StateProvince,
			City:          req.Address.City,
			PostalCode:    req.Address.PostalCode,
		},
	}

	options, err := h.calculatorService.CalculateRates(c.Request.Context(), storeID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toShippingOptionResponses(options))
}
