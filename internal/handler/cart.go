package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/cart"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	carts    *cart.CookieStore
	products ProductLookup
}

func NewCartHandler(logger *slog.Logger, carts *cart.CookieStore, products ProductLookup) *CartHandler {
	return &CartHandler{
		logger:   logger.With(slog.String("handler", "cart")),
		validate: newValidator(),
		carts:    carts,
		products: products,
	}
}

func (h *CartHandler) Init(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productId}", h.SetQuantity)
		r.Delete("/items/{productId}", h.RemoveItem)
	})
}

// load returns the verified cart or nil. A cookie that fails verification
// has already been deleted by the store.
func (h *CartHandler) load(w http.ResponseWriter, r *http.Request) *cart.Session {
	session, err := h.carts.Load(w, r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "discarded cart cookie", slog.Any("error", err))
		return nil
	}
	return session
}

// GetCart returns the verified cart.
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  utils.DataResponse{data=Cart}
// @Router       /cart [get]
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	utils.WriteData(w, CartToJSON(h.load(w, r)), http.StatusOK)
}

// AddItem adds units of a product to the cart.
// @Summary      Add cart item
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        item  body      CartItemRequest  true  "Product and quantity"
// @Success      200   {object}  utils.DataResponse{data=Cart}
// @Failure      400   {object}  utils.ValidationErrorResponse
// @Failure      404   {object}  utils.ErrorResponse "Product not found"
// @Failure      409   {object}  utils.ErrorResponse "Insufficient stock"
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteDecodeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	current := h.load(w, r)
	have := 0
	if current != nil {
		have = current.Quantity(req.ProductID)
	}
	if err := h.checkProduct(r, req.ProductID, have+req.Quantity); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	next, err := h.carts.Signer().Add(current, req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	h.save(w, r, next)
}

// SetQuantity overwrites the quantity of one cart line. Zero removes it.
// @Summary      Set cart item quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productId  path      int                  true  "Product ID"
// @Param        item       body      CartQuantityRequest  true  "New quantity"
// @Success      200        {object}  utils.DataResponse{data=Cart}
// @Failure      400        {object}  utils.ValidationErrorResponse
// @Failure      404        {object}  utils.ErrorResponse "Product not found"
// @Failure      409        {object}  utils.ErrorResponse "Insufficient stock"
// @Router       /cart/items/{productId} [put]
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	var req CartQuantityRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteDecodeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	current := h.load(w, r)
	if current == nil && req.Quantity == 0 {
		utils.WriteData(w, CartToJSON(nil), http.StatusOK)
		return
	}
	if req.Quantity > 0 {
		if err := h.checkProduct(r, productID, req.Quantity); err != nil {
			writeServiceError(w, r, h.logger, err)
			return
		}
	}

	var (
		next cart.Session
		err  error
	)
	if current == nil {
		next, err = h.carts.Signer().Add(nil, productID, req.Quantity)
	} else {
		next, err = h.carts.Signer().SetQuantity(*current, productID, req.Quantity)
	}
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	h.save(w, r, next)
}

// RemoveItem drops one product from the cart.
// @Summary      Remove cart item
// @Tags         cart
// @Produce      json
// @Param        productId  path      int  true  "Product ID"
// @Success      200        {object}  utils.DataResponse{data=Cart}
// @Failure      400        {object}  utils.ValidationErrorResponse
// @Router       /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	current := h.load(w, r)
	if current == nil {
		utils.WriteData(w, CartToJSON(nil), http.StatusOK)
		return
	}

	next, err := h.carts.Signer().Remove(*current, productID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	h.save(w, r, next)
}

// ClearCart deletes the cart cookie.
// @Summary      Clear cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  utils.DataResponse{data=Cart}
// @Router       /cart [delete]
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.carts.Clear(w)
	utils.WriteData(w, CartToJSON(nil), http.StatusOK)
}

func (h *CartHandler) save(w http.ResponseWriter, r *http.Request, session cart.Session) {
	if err := h.carts.Save(w, session); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	utils.WriteData(w, CartToJSON(&session), http.StatusOK)
}

func (h *CartHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "productId")
	if err := h.validate.Var(raw, "required,number"); err != nil {
		utils.WriteValidationError(w, err)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		utils.WriteError(w, "invalid product id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// checkProduct confirms the product can be sold in the wanted quantity.
func (h *CartHandler) checkProduct(r *http.Request, productID int64, want int) error {
	p, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		return err
	}
	if !p.IsActive {
		return entities.ErrProductNotFound
	}
	if p.Stock < want {
		return &entities.StockError{ProductID: p.ID, Name: p.Name, Requested: want, Available: p.Stock}
	}
	return nil
}
