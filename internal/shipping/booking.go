package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
)

const (
	ordersPath    = "/v1/orders"
	trackingsPath = "/v1/trackings/"
)

type bookingResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Courier struct {
		TrackingID string `json:"tracking_id"`
		WaybillID  string `json:"waybill_id"`
	} `json:"courier"`
}

// CreateBooking asks the carrier to pick up the parcel for a paid order.
func (c *Client) CreateBooking(ctx context.Context, order entities.Order) (entities.ShippingBooking, error) {
	items := make([]entities.PackageItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, entities.PackageItem{
			Name:     it.Name,
			Value:    it.Price,
			Quantity: it.Quantity,
			Weight:   it.Weight,
			Length:   it.Length,
			Width:    it.Width,
			Height:   it.Height,
		})
	}

	body := map[string]any{
		"reference_id":              order.OrderNumber,
		"shipper_contact_name":      order.Shipper.Name,
		"shipper_contact_phone":     order.Shipper.Phone,
		"shipper_contact_email":     order.Shipper.Email,
		"origin_contact_name":       order.Shipper.Name,
		"origin_contact_phone":      order.Shipper.Phone,
		"origin_address":            order.Shipper.Address,
		"origin_postal_code":        order.Shipper.PostalCode,
		"origin_area_id":            order.Shipper.AreaID,
		"destination_contact_name":  order.Recipient.Name,
		"destination_contact_phone": order.Recipient.Phone,
		"destination_contact_email": order.Recipient.Email,
		"destination_address":       order.Recipient.Address,
		"destination_postal_code":   order.Recipient.PostalCode,
		"destination_area_id":       order.Recipient.AreaID,
		"destination_note":          order.Notes,
		"courier_company":           order.CourierCode,
		"courier_type":              order.CourierServiceCode,
		"delivery_type":             "now",
		"order_note":                order.OrderNumber,
		"items":                     packageItems(items),
	}
	if order.CourierInsurance.IsPositive() {
		body["courier_insurance"] = order.Subtotal.Round(0).IntPart()
	}

	data, err := c.postJSON(ctx, ordersPath, body)
	if err != nil {
		return entities.ShippingBooking{}, fmt.Errorf("create booking: %w", err)
	}

	var resp bookingResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return entities.ShippingBooking{}, fmt.Errorf("%w: decode booking: %w", ErrUpstreamRejected, err)
	}
	if resp.ID == "" {
		return entities.ShippingBooking{}, fmt.Errorf("%w: booking without id", ErrUpstreamRejected)
	}

	var raw map[string]any
	_ = json.Unmarshal(data, &raw)

	return entities.ShippingBooking{
		ID:         resp.ID,
		TrackingID: resp.Courier.TrackingID,
		WaybillID:  resp.Courier.WaybillID,
		Status:     resp.Status,
		BookedAt:   time.Now().UTC(),
		Raw:        raw,
	}, nil
}

type trackingResponse struct {
	ID        string `json:"id"`
	WaybillID string `json:"waybill_id"`
	Status    string `json:"status"`
}

func (c *Client) Track(ctx context.Context, trackingID string) (entities.TrackingInfo, error) {
	data, err := c.getJSON(ctx, trackingsPath+url.PathEscape(trackingID), nil)
	if err != nil {
		return entities.TrackingInfo{}, fmt.Errorf("track %s: %w", trackingID, err)
	}

	var resp trackingResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return entities.TrackingInfo{}, fmt.Errorf("%w: decode tracking: %w", ErrUpstreamRejected, err)
	}
	return entities.TrackingInfo{
		TrackingID: trackingID,
		WaybillID:  resp.WaybillID,
		Status:     strings.ToLower(resp.Status),
	}, nil
}

// trackingStatuses maps carrier parcel states onto order statuses. States
// missing here are recorded on the order but never move it.
var trackingStatuses = map[string]entities.OrderStatus{
	"confirmed":    entities.StatusProcessing,
	"allocated":    entities.StatusProcessing,
	"picking_up":   entities.StatusProcessing,
	"picked":       entities.StatusShipped,
	"dropping_off": entities.StatusShipped,
	"in_transit":   entities.StatusShipped,
	"delivered":    entities.StatusDelivered,
}

// OrderStatusFor returns the order status a carrier state implies.
func OrderStatusFor(trackingStatus string) (entities.OrderStatus, bool) {
	status, ok := trackingStatuses[strings.ToLower(strings.TrimSpace(trackingStatus))]
	return status, ok
}
