package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/payment"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type PaymentAck struct {
	OrderID string `json:"orderId,omitempty"`
	Status  string `json:"status,omitempty"`
	Applied bool   `json:"applied"`
}

type PaymentHandler struct {
	logger  *slog.Logger
	parser  NotificationParser
	applier PaymentApplier
}

func NewPaymentHandler(logger *slog.Logger, parser NotificationParser, applier PaymentApplier) *PaymentHandler {
	return &PaymentHandler{
		logger:  logger.With(slog.String("handler", "payments")),
		parser:  parser,
		applier: applier,
	}
}

func (h *PaymentHandler) Init(r chi.Router) {
	r.Post("/payments/notification", h.Notify)
}

// Notify applies a signed payment gateway callback to its order.
// @Summary      Payment notification
// @Description  Verifies the gateway signature, checks the paid amount against the order total and moves the order forward. Stale or repeated notifications are acknowledged without changes.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  utils.DataResponse{data=PaymentAck}
// @Failure      400  {object}  utils.ErrorResponse "Malformed notification or amount mismatch"
// @Failure      401  {object}  utils.ErrorResponse "Signature mismatch"
// @Failure      404  {object}  utils.ErrorResponse "Order not found"
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /payments/notification [post]
func (h *PaymentHandler) Notify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			utils.WriteDecodeError(w, utils.ErrBodyTooLarge)
			return
		}
		utils.WriteDecodeError(w, utils.ErrDecodeBody)
		return
	}

	n, err := h.parser.ParseNotification(body, r.Header)
	switch {
	case errors.Is(err, payment.ErrInvalidSignature):
		h.logger.WarnContext(ctx, "rejected payment notification", slog.Any("error", err))
		utils.WriteError(w, "invalid signature", http.StatusUnauthorized)
		return
	case errors.Is(err, payment.ErrInvalidNotification):
		utils.WriteError(w, "invalid notification", http.StatusBadRequest)
		return
	case err != nil:
		writeServiceError(w, r, h.logger, err)
		return
	}

	ack := PaymentAck{OrderID: n.OrderID, Status: string(n.Status)}
	if n.OrderID == "" || n.Status == "" {
		h.logger.DebugContext(ctx, "payment notification ignored",
			slog.String("order_id", n.OrderID),
			slog.String("raw_status", n.RawStatus),
		)
		utils.WriteData(w, ack, http.StatusOK)
		return
	}

	applied, err := h.applier.ApplyPayment(ctx, n.OrderID, n.Status, n.GrossAmount, n.Reference)
	switch {
	case errors.Is(err, entities.ErrInvalidTransition):
		// The order already moved past this state; the gateway must stop retrying.
		h.logger.InfoContext(ctx, "stale payment notification",
			slog.String("order_id", n.OrderID),
			slog.String("status", string(n.Status)),
		)
	case errors.Is(err, entities.ErrAmountMismatch):
		h.logger.ErrorContext(ctx, "payment amount mismatch",
			slog.String("order_id", n.OrderID),
			slog.String("gross_amount", n.GrossAmount.String()),
		)
		utils.WriteError(w, "amount mismatch", http.StatusBadRequest)
		return
	case err != nil:
		writeServiceError(w, r, h.logger, err)
		return
	}

	ack.Applied = applied
	utils.WriteData(w, ack, http.StatusOK)
}
