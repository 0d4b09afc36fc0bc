package handler

import (
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/cart"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/service"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/sanitize"
	"github.com/shopspring/decimal"
)

const money = 2

type CartItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1,lte=10"`
}

type CartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=10"`
}

type Cart struct {
	SessionID     string      `json:"sessionId,omitempty"`
	Items         []cart.Item `json:"items"`
	TotalQuantity int         `json:"totalQuantity"`
	UpdatedAt     int64       `json:"updatedAt,omitempty"`
}

func CartToJSON(s *cart.Session) Cart {
	if s == nil {
		return Cart{Items: []cart.Item{}}
	}
	items := s.Items
	if items == nil {
		items = []cart.Item{}
	}
	return Cart{
		SessionID:     s.SessionID,
		Items:         items,
		TotalQuantity: s.TotalQuantity(),
		UpdatedAt:     s.UpdatedAt,
	}
}

type Customer struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Phone      string `json:"phone" validate:"required,id_phone"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Address    string `json:"address" validate:"required,min=10,max=500"`
	City       string `json:"city" validate:"omitempty,max=100"`
	Province   string `json:"province" validate:"omitempty,max=100"`
	District   string `json:"district" validate:"omitempty,max=100"`
	PostalCode string `json:"postalCode" validate:"required,postal"`
}

type LineRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1,lte=10"`
}

type PlaceOrderRequest struct {
	Customer           Customer      `json:"customer" validate:"required"`
	Items              []LineRequest `json:"items" validate:"required,min=1,max=50,unique=ProductID,max_units,dive"`
	CourierCode        string        `json:"courierCode" validate:"required,max=50"`
	CourierServiceCode string        `json:"courierServiceCode" validate:"required,max=50"`
	Notes              string        `json:"notes" validate:"max=500"`
	// Total is the amount the browser displayed. It is never charged.
	Total *decimal.Decimal `json:"total,omitempty" swaggertype:"string"`
}

// sanitize strips markup from every free-text field in place.
func (r *PlaceOrderRequest) sanitize() {
	c := &r.Customer
	c.Name = sanitize.Text(c.Name)
	c.Email = sanitize.Text(c.Email)
	c.Address = sanitize.Text(c.Address)
	c.City = sanitize.Text(c.City)
	c.Province = sanitize.Text(c.Province)
	c.District = sanitize.Text(c.District)
	r.CourierCode = sanitize.Text(r.CourierCode)
	r.CourierServiceCode = sanitize.Text(r.CourierServiceCode)
	r.Notes = sanitize.Text(r.Notes)
}

func (r PlaceOrderRequest) ToInput(userID string) service.PlaceOrderInput {
	return service.PlaceOrderInput{
		UserID: userID,
		Lines:  linesFromRequest(r.Items),
		Recipient: entities.Address{
			Name:       r.Customer.Name,
			Phone:      r.Customer.Phone,
			Email:      r.Customer.Email,
			Address:    r.Customer.Address,
			City:       r.Customer.City,
			Province:   r.Customer.Province,
			District:   r.Customer.District,
			PostalCode: r.Customer.PostalCode,
		},
		CourierCode:        r.CourierCode,
		CourierServiceCode: r.CourierServiceCode,
		Notes:              r.Notes,
		ClientTotal:        r.Total,
	}
}

func linesFromRequest(items []LineRequest) []service.Line {
	lines := make([]service.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, service.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}

type PaymentInfo struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

type PlaceOrderResponse struct {
	OrderID     string      `json:"orderId"`
	OrderNumber string      `json:"orderNumber"`
	Total       string      `json:"total"`
	Payment     PaymentInfo `json:"payment"`
}

func PlacedOrderToJSON(res service.PlaceOrderResult) PlaceOrderResponse {
	out := PlaceOrderResponse{
		OrderID:     res.Order.ID,
		OrderNumber: res.Order.OrderNumber,
		Total:       res.Order.Total.StringFixed(money),
	}
	if res.Payment != nil {
		out.Payment = PaymentInfo{Token: res.Payment.Token, RedirectURL: res.Payment.RedirectURL}
	}
	return out
}

type UpdateStatusRequest struct {
	OrderID string `json:"orderId" validate:"required,max=64"`
	Status  string `json:"status" validate:"required,oneof=pending paid processing shipped delivered cancelled failed"`
	Note    string `json:"note" validate:"max=500"`
}

type StatusUpdateResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Applied bool   `json:"applied"`
}

type TransactionActionRequest struct {
	OrderID string `json:"orderId" validate:"required,max=64"`
	Action  string `json:"action" validate:"required,oneof=cancel reorder"`
	Reason  string `json:"reason" validate:"max=500"`
}

type ReorderResponse struct {
	OrderID string                `json:"orderId"`
	Items   []service.ReorderLine `json:"items"`
}

type OrderItem struct {
	ProductID *int64 `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type Courier struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	ServiceCode string `json:"serviceCode"`
	ServiceName string `json:"serviceName"`
}

type Shipment struct {
	TrackingID string `json:"trackingId,omitempty"`
	WaybillID  string `json:"waybillId,omitempty"`
	Status     string `json:"status,omitempty"`
}

type Order struct {
	ID               string                 `json:"id"`
	OrderNumber      string                 `json:"orderNumber"`
	Status           entities.OrderStatus   `json:"status"`
	Subtotal         string                 `json:"subtotal"`
	ShippingCost     string                 `json:"shippingCost"`
	CourierInsurance string                 `json:"courierInsurance"`
	Total            string                 `json:"total"`
	Currency         string                 `json:"currency"`
	Recipient        entities.Address       `json:"recipient"`
	Courier          Courier                `json:"courier"`
	Shipment         *Shipment              `json:"shipment,omitempty"`
	Notes            string                 `json:"notes,omitempty"`
	PaymentURL       string                 `json:"paymentUrl,omitempty"`
	Cancellation     *entities.Cancellation `json:"cancellation,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
	Items            []OrderItem            `json:"items,omitempty"`
}

func OrderEntityToJSON(o entities.Order) Order {
	out := Order{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		Status:           o.Status,
		Subtotal:         o.Subtotal.StringFixed(money),
		ShippingCost:     o.ShippingCost.StringFixed(money),
		CourierInsurance: o.CourierInsurance.StringFixed(money),
		Total:            o.Total.StringFixed(money),
		Currency:         o.Currency,
		Recipient:        o.Recipient,
		Courier: Courier{
			Code:        o.CourierCode,
			Name:        o.CourierName,
			ServiceCode: o.CourierServiceCode,
			ServiceName: o.CourierServiceName,
		},
		Notes:        o.Notes,
		PaymentURL:   o.PaymentURL(),
		Cancellation: o.Metadata.Cancellation,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}

	if b := o.Metadata.ShippingBooking; b != nil {
		out.Shipment = &Shipment{TrackingID: b.TrackingID, WaybillID: b.WaybillID, Status: o.TrackingStatus}
	}

	if len(o.Items) > 0 {
		out.Items = make([]OrderItem, 0, len(o.Items))
		for _, it := range o.Items {
			out.Items = append(out.Items, OrderItem{
				ProductID: it.ProductID,
				Name:      it.Name,
				Price:     it.Price.StringFixed(money),
				Quantity:  it.Quantity,
				Subtotal:  it.Subtotal.StringFixed(money),
			})
		}
	}
	return out
}

type Summary struct {
	TotalOrders  int                          `json:"totalOrders"`
	TotalValue   string                       `json:"totalValue"`
	AverageValue string                       `json:"averageValue"`
	ByStatus     map[entities.OrderStatus]int `json:"byStatus"`
}

type TransactionsResponse struct {
	Orders     []Order            `json:"orders"`
	Pagination service.Pagination `json:"pagination"`
	Summary    Summary            `json:"summary"`
}

func TransactionPageToJSON(p service.TransactionPage) TransactionsResponse {
	orders := make([]Order, 0, len(p.Orders))
	for _, o := range p.Orders {
		orders = append(orders, OrderEntityToJSON(o))
	}
	return TransactionsResponse{
		Orders:     orders,
		Pagination: p.Pagination,
		Summary: Summary{
			TotalOrders:  p.Summary.TotalOrders,
			TotalValue:   p.Summary.TotalValue.StringFixed(money),
			AverageValue: p.Summary.AverageValue.StringFixed(money),
			ByStatus:     p.Summary.ByStatus,
		},
	}
}

type StoreInfo struct {
	Name       string `json:"name"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code"`
}

type RequestInfo struct {
	DestinationPostal string         `json:"destination_postal"`
	Destination       *entities.Area `json:"destination,omitempty"`
	ItemsCount        int            `json:"items_count"`
	Subtotal          string         `json:"subtotal"`
}

// ShippingResponse is the rate list envelope. It carries store and request
// context next to the data, so it does not use utils.DataResponse.
type ShippingResponse struct {
	Success     bool                    `json:"success"`
	Data        []entities.ShippingRate `json:"data"`
	StoreInfo   StoreInfo               `json:"store_info"`
	RequestInfo RequestInfo             `json:"request_info"`
}
