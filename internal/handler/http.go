package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/auth"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/cart"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/payment"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/service"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/shipping"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in service.PlaceOrderInput) (service.PlaceOrderResult, error)
}

type OrderLifecycle interface {
	Cancel(ctx context.Context, userID string, orderID string, reason string) (entities.Order, error)
	Reorder(ctx context.Context, userID string, orderID string) ([]service.ReorderLine, error)
	ApplyStatus(ctx context.Context, orderID string, status entities.OrderStatus, ev entities.StatusEvidence) (bool, error)
}

type TransactionReader interface {
	List(ctx context.Context, userID string, q service.TransactionQuery) (service.TransactionPage, error)
	Get(ctx context.Context, userID string, orderID string) (entities.Order, error)
}

type Quoter interface {
	Quote(ctx context.Context, lines []service.Line, destPostal string) (service.Quote, error)
}

type AreaSearcher interface {
	SearchAreas(ctx context.Context, keyword string, limit int) ([]entities.Area, error)
}

type ProductLookup interface {
	GetProduct(ctx context.Context, id int64) (entities.Product, error)
}

type NotificationParser interface {
	ParseNotification(body []byte, header http.Header) (payment.Notification, error)
}

type PaymentApplier interface {
	ApplyPayment(ctx context.Context, orderID string, status entities.OrderStatus, gross decimal.Decimal, reference string) (bool, error)
}

type TrackingApplier interface {
	ApplyTracking(ctx context.Context, update entities.TrackingUpdate) (bool, error)
}

// Guards are the middlewares a handler puts in front of its routes. Nil
// entries are skipped.
type Guards struct {
	Session   func(http.Handler) http.Handler
	CSRF      func(http.Handler) http.Handler
	Admin     func(http.Handler) http.Handler
	RateLimit func(http.Handler) http.Handler
}

// only drops the nil entries of mws.
func only(mws ...func(http.Handler) http.Handler) []func(http.Handler) http.Handler {
	out := make([]func(http.Handler) http.Handler, 0, len(mws))
	for _, mw := range mws {
		if mw != nil {
			out = append(out, mw)
		}
	}
	return out
}

var (
	indonesianPhone = regexp.MustCompile(`^(\+62|62|0)8[1-9][0-9]{6,11}$`)
	postalCode      = regexp.MustCompile(`^[0-9]{5}$`)
)

// newValidator registers the id_phone, postal and max_units tags used by
// request models.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("id_phone", func(fl validator.FieldLevel) bool {
		return indonesianPhone.MatchString(fl.Field().String())
	})
	v.RegisterValidation("postal", func(fl validator.FieldLevel) bool {
		return postalCode.MatchString(fl.Field().String())
	})
	// max_units caps the summed quantity of a line list at the cart limit.
	v.RegisterValidation("max_units", func(fl validator.FieldLevel) bool {
		lines, ok := fl.Field().Interface().([]LineRequest)
		if !ok {
			return false
		}
		total := 0
		for _, l := range lines {
			total += l.Quantity
		}
		return total <= cart.MaxTotalQuantity
	})
	return v
}

func identity(r *http.Request) (auth.Identity, bool) {
	return auth.IdentityFromContext(r.Context())
}

// writeServiceError maps domain errors onto HTTP answers. Anything
// unrecognised is logged and reported as a generic internal error.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		stockErr  *entities.StockError
		cancelErr *entities.CancelError
		areaErr   *shipping.AreaNotFoundError
		ve        validator.ValidationErrors
	)

	switch {
	case errors.As(err, &ve):
		utils.WriteValidationError(w, err)
	case errors.As(err, &stockErr):
		utils.WriteError(w, stockErr.Error(), http.StatusConflict)
	case errors.As(err, &cancelErr):
		utils.WriteError(w, cancelErr.Message, http.StatusConflict)
	case errors.As(err, &areaErr):
		utils.WriteError(w, "postal code not served by any courier", http.StatusBadRequest)
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrProductNotFound):
		utils.WriteError(w, "product not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrPriceChanged):
		utils.WriteError(w, "product price changed, please review your cart", http.StatusConflict)
	case errors.Is(err, entities.ErrRateNotOffered):
		utils.WriteError(w, "selected shipping option is no longer available", http.StatusConflict)
	case errors.Is(err, entities.ErrNotReorderable):
		utils.WriteError(w, "order cannot be reordered", http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidTransition):
		utils.WriteError(w, "invalid status transition", http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidOrder),
		errors.Is(err, entities.ErrTotalOutOfBounds),
		errors.Is(err, entities.ErrInvalidSort),
		errors.Is(err, entities.ErrInvalidFilter):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, cart.ErrProductLimit),
		errors.Is(err, cart.ErrCartLimit),
		errors.Is(err, cart.ErrInvalidQuantity):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, shipping.ErrUpstreamTimeout):
		utils.WriteError(w, "shipping provider timed out", http.StatusRequestTimeout)
	case errors.Is(err, shipping.ErrUpstreamRejected):
		utils.WriteError(w, "shipping provider rejected the request", http.StatusBadGateway)
	case errors.Is(err, shipping.ErrUpstreamUnavailable):
		utils.WriteError(w, "shipping provider unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, utils.ErrBodyTooLarge), errors.Is(err, utils.ErrDecodeBody):
		utils.WriteDecodeError(w, err)
	default:
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
