package handler

import (
	"log/slog"
	"net/http"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/cart"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/sanitize"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	logger    *slog.Logger
	validate  *validator.Validate
	placer    OrderPlacer
	lifecycle OrderLifecycle
	carts     *cart.CookieStore
	guards    Guards
}

func NewOrderHandler(logger *slog.Logger, placer OrderPlacer, lifecycle OrderLifecycle, carts *cart.CookieStore, guards Guards) *OrderHandler {
	return &OrderHandler{
		logger:    logger.With(slog.String("handler", "orders")),
		validate:  newValidator(),
		placer:    placer,
		lifecycle: lifecycle,
		carts:     carts,
		guards:    guards,
	}
}

func (h *OrderHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(only(h.guards.Session, h.guards.CSRF)...)
		r.With(only(h.guards.RateLimit)...).Post("/", h.PlaceOrder)
		r.With(only(h.guards.Admin)...).Put("/", h.UpdateStatus)
	})
}

// PlaceOrder creates an order from server-side prices and opens a payment
// session for it.
// @Summary      Place order
// @Description  Prices the items, reserves stock and stores the order in one transaction, then requests a payment session. A payment gateway failure still answers 201 with an empty payment block.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header    string             true  "CSRF token from the csrf_token cookie"
// @Param        order         body      PlaceOrderRequest  true  "Order"
// @Success      201           {object}  utils.DataResponse{data=PlaceOrderResponse}
// @Failure      400           {object}  utils.ValidationErrorResponse
// @Failure      401           {object}  utils.ErrorResponse
// @Failure      403           {object}  utils.ErrorResponse "CSRF or origin check failed"
// @Failure      404           {object}  utils.ErrorResponse "Product not found"
// @Failure      409           {object}  utils.ErrorResponse "Insufficient stock, changed price or rate"
// @Failure      413           {object}  utils.ErrorResponse
// @Failure      429           {object}  utils.ErrorResponse
// @Failure      503           {object}  utils.ErrorResponse "Carrier unavailable"
// @Failure      500           {object}  utils.ErrorResponse
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req PlaceOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteDecodeError(w, err)
		return
	}
	req.sanitize()
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	res, err := h.placer.PlaceOrder(r.Context(), req.ToInput(id.UserID))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.carts.Clear(w)
	utils.WriteData(w, PlacedOrderToJSON(res), http.StatusCreated)
}

// UpdateStatus moves an order to another status on an administrator's
// authority.
// @Summary      Update order status
// @Description  Runs the order state machine with admin provenance. Entering paid books the shipment.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header    string               true  "CSRF token"
// @Param        update        body      UpdateStatusRequest  true  "Status change"
// @Success      200           {object}  utils.DataResponse{data=StatusUpdateResponse}
// @Failure      400           {object}  utils.ValidationErrorResponse
// @Failure      401           {object}  utils.ErrorResponse
// @Failure      403           {object}  utils.ErrorResponse
// @Failure      404           {object}  utils.ErrorResponse "Order not found"
// @Failure      409           {object}  utils.ErrorResponse "Invalid transition"
// @Router       /orders [put]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok || !id.IsAdmin() {
		utils.WriteError(w, "forbidden", http.StatusForbidden)
		return
	}

	var req UpdateStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteDecodeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	status := entities.OrderStatus(req.Status)
	applied, err := h.lifecycle.ApplyStatus(r.Context(), req.OrderID, status, entities.StatusEvidence{
		Source: entities.SourceAdmin,
		Actor:  id.UserID,
		Note:   sanitize.Text(req.Note),
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	utils.WriteData(w, StatusUpdateResponse{OrderID: req.OrderID, Status: req.Status, Applied: applied}, http.StatusOK)
}
