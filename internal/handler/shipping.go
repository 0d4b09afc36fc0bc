package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/cart"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/service"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/sanitize"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const (
	defaultAreaLimit = 10
	maxAreaLimit     = 50
)

type quoteQuery struct {
	DestinationPostal string        `validate:"required,postal"`
	Items             []LineRequest `validate:"required,min=1,max=50,unique=ProductID,max_units,dive"`
}

type areaQuery struct {
	Keyword string `validate:"required,min=3,max=100"`
	Limit   int    `validate:"gte=1,lte=50"`
}

type ShippingHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	quoter   Quoter
	areas    AreaSearcher
	carts    *cart.CookieStore
	store    StoreInfo
	guards   Guards
}

func NewShippingHandler(logger *slog.Logger, quoter Quoter, areas AreaSearcher, carts *cart.CookieStore, store StoreInfo, guards Guards) *ShippingHandler {
	return &ShippingHandler{
		logger:   logger.With(slog.String("handler", "shipping")),
		validate: newValidator(),
		quoter:   quoter,
		areas:    areas,
		carts:    carts,
		store:    store,
		guards:   guards,
	}
}

func (h *ShippingHandler) Init(r chi.Router) {
	r.Route("/shipping", func(r chi.Router) {
		r.Use(only(h.guards.RateLimit)...)
		r.Get("/", h.GetRates)
		r.Get("/areas", h.SearchAreas)
	})
}

// GetRates quotes every courier service for the given items.
// @Summary      Shipping rates
// @Description  Prices the items with current product data and returns the courier services for the route, cheapest first. Without the items parameter the verified cart is quoted. An uncovered route answers with an empty list.
// @Tags         shipping
// @Produce      json
// @Param        destinationPostal  query     string  true   "Destination postal code (5 digits)"
// @Param        items              query     string  false  "JSON array of {productId, quantity}"
// @Success      200                {object}  ShippingResponse
// @Failure      400                {object}  utils.ValidationErrorResponse
// @Failure      404                {object}  utils.ErrorResponse "Product not found"
// @Failure      408                {object}  utils.ErrorResponse "Carrier timed out"
// @Failure      429                {object}  utils.ErrorResponse
// @Failure      502                {object}  utils.ErrorResponse "Carrier rejected the request"
// @Failure      503                {object}  utils.ErrorResponse "Carrier unavailable"
// @Router       /shipping [get]
func (h *ShippingHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	q := quoteQuery{DestinationPostal: strings.TrimSpace(r.URL.Query().Get("destinationPostal"))}

	if raw := r.URL.Query().Get("items"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Items); err != nil {
			utils.WriteError(w, "invalid items parameter", http.StatusBadRequest)
			return
		}
	} else if session, err := h.carts.Load(w, r); err == nil && session != nil {
		for _, it := range session.Items {
			q.Items = append(q.Items, LineRequest{ProductID: it.ProductID, Quantity: it.Quantity})
		}
	}

	if err := h.validate.Struct(q); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	quote, err := h.quoter.Quote(r.Context(), linesFromRequest(q.Items), q.DestinationPostal)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	rates := quote.Rates
	if rates == nil {
		rates = []entities.ShippingRate{}
	}
	destination := quote.Destination

	utils.WriteJSON(w, ShippingResponse{
		Success:   true,
		Data:      rates,
		StoreInfo: h.store,
		RequestInfo: RequestInfo{
			DestinationPostal: q.DestinationPostal,
			Destination:       &destination,
			ItemsCount:        countUnits(q.Items),
			Subtotal:          quote.Subtotal.StringFixed(money),
		},
	}, http.StatusOK)
}

// SearchAreas looks up carrier areas by free-text keyword.
// @Summary      Search areas
// @Tags         shipping
// @Produce      json
// @Param        keyword  query     string  true   "City, district or postal code"
// @Param        limit    query     int     false  "Maximum results (1-50)"
// @Success      200      {object}  utils.DataResponse{data=[]entities.Area}
// @Failure      400      {object}  utils.ValidationErrorResponse
// @Failure      429      {object}  utils.ErrorResponse
// @Failure      503      {object}  utils.ErrorResponse "Carrier unavailable"
// @Router       /shipping/areas [get]
func (h *ShippingHandler) SearchAreas(w http.ResponseWriter, r *http.Request) {
	q := areaQuery{
		Keyword: sanitize.Text(r.URL.Query().Get("keyword")),
		Limit:   defaultAreaLimit,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			utils.WriteError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		q.Limit = limit
	}

	if err := h.validate.Struct(q); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	areas, err := h.areas.SearchAreas(r.Context(), q.Keyword, min(q.Limit, maxAreaLimit))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	if areas == nil {
		areas = []entities.Area{}
	}
	utils.WriteData(w, areas, http.StatusOK)
}

func countUnits(items []LineRequest) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

var _ Quoter = (*service.PricingService)(nil)
