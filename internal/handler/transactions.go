package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/service"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/sanitize"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type TransactionHandler struct {
	logger       *slog.Logger
	validate     *validator.Validate
	transactions TransactionReader
	lifecycle    OrderLifecycle
	guards       Guards
}

func NewTransactionHandler(logger *slog.Logger, transactions TransactionReader, lifecycle OrderLifecycle, guards Guards) *TransactionHandler {
	return &TransactionHandler{
		logger:       logger.With(slog.String("handler", "transactions")),
		validate:     newValidator(),
		transactions: transactions,
		lifecycle:    lifecycle,
		guards:       guards,
	}
}

func (h *TransactionHandler) Init(r chi.Router) {
	r.Route("/transactions", func(r chi.Router) {
		r.Use(only(h.guards.Session, h.guards.CSRF)...)
		r.Get("/", h.ListTransactions)
		r.Post("/", h.Act)
		r.Get("/{orderId}", h.GetTransaction)
	})
}

// ListTransactions returns one page of the caller's orders and a summary.
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Param        page          query     int     false  "Page, from 1"
// @Param        limit         query     int     false  "Page size (1-50)"
// @Param        period        query     string  false  "all, today, week, month, 3months or year"
// @Param        status        query     string  false  "Order status or all"
// @Param        search        query     string  false  "Order number, recipient name or email"
// @Param        sortBy        query     string  false  "created_at, total, status or order_number"
// @Param        sortOrder     query     string  false  "asc or desc"
// @Param        includeItems  query     bool    false  "Attach order items"
// @Success      200           {object}  utils.DataResponse{data=TransactionsResponse}
// @Failure      400           {object}  utils.ErrorResponse
// @Failure      401           {object}  utils.ErrorResponse
// @Router       /transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	values := r.URL.Query()
	q := service.TransactionQuery{
		Period:    values.Get("period"),
		Status:    values.Get("status"),
		Search:    sanitize.Text(values.Get("search")),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}

	var err error
	if q.Page, err = intParam(values.Get("page")); err != nil {
		utils.WriteError(w, "invalid page", http.StatusBadRequest)
		return
	}
	if q.Limit, err = intParam(values.Get("limit")); err != nil {
		utils.WriteError(w, "invalid limit", http.StatusBadRequest)
		return
	}
	if raw := values.Get("includeItems"); raw != "" {
		if q.IncludeItems, err = strconv.ParseBool(raw); err != nil {
			utils.WriteError(w, "invalid includeItems", http.StatusBadRequest)
			return
		}
	}

	page, err := h.transactions.List(r.Context(), id.UserID, q)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteData(w, TransactionPageToJSON(page), http.StatusOK)
}

// GetTransaction returns one of the caller's orders with its items.
// @Summary      Get transaction
// @Tags         transactions
// @Produce      json
// @Param        orderId  path      string  true  "Order ID"
// @Success      200      {object}  utils.DataResponse{data=Order}
// @Failure      401      {object}  utils.ErrorResponse
// @Failure      404      {object}  utils.ErrorResponse "Order not found"
// @Router       /transactions/{orderId} [get]
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID := chi.URLParam(r, "orderId")
	if err := h.validate.Var(orderID, "required,max=64"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.transactions.Get(r.Context(), id.UserID, orderID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteData(w, OrderEntityToJSON(order), http.StatusOK)
}

// Act cancels an order or returns its items for a new cart.
// @Summary      Cancel or reorder
// @Description  cancel is allowed while the order is pending or processing and restores stock. reorder returns the items of a finished order that can still be bought.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header    string                    true  "CSRF token"
// @Param        action        body      TransactionActionRequest  true  "Action"
// @Success      200           {object}  utils.DataResponse{data=Order} "cancel"
// @Success      200           {object}  utils.DataResponse{data=ReorderResponse} "reorder"
// @Failure      400           {object}  utils.ValidationErrorResponse
// @Failure      401           {object}  utils.ErrorResponse
// @Failure      403           {object}  utils.ErrorResponse
// @Failure      404           {object}  utils.ErrorResponse "Order not found"
// @Failure      409           {object}  utils.ErrorResponse "Status does not allow the action"
// @Router       /transactions [post]
func (h *TransactionHandler) Act(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req TransactionActionRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteDecodeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	switch req.Action {
	case "cancel":
		order, err := h.lifecycle.Cancel(r.Context(), id.UserID, req.OrderID, sanitize.Text(req.Reason))
		if err != nil {
			writeServiceError(w, r, h.logger, err)
			return
		}
		utils.WriteData(w, OrderEntityToJSON(order), http.StatusOK)
	case "reorder":
		lines, err := h.lifecycle.Reorder(r.Context(), id.UserID, req.OrderID)
		if err != nil {
			writeServiceError(w, r, h.logger, err)
			return
		}
		if lines == nil {
			lines = []service.ReorderLine{}
		}
		utils.WriteData(w, ReorderResponse{OrderID: req.OrderID, Items: lines}, http.StatusOK)
	}
}

// intParam parses an optional integer query value. Empty means zero, which
// the service replaces with its default.
func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
