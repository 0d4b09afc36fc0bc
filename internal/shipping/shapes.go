package shipping

import (
	"strings"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
)

// rateRequest is everything a request shape may draw from.
type rateRequest struct {
	Origin      entities.Area
	Destination entities.Area
	Couriers    []string
	Items       []entities.PackageItem
	Dimensions  entities.PackageDimensions
}

// requestShape is one way of asking the carrier for rates. Shapes are tried
// in order; a disabled shape stays listed with the reason it is off.
type requestShape struct {
	Name    string
	Enabled bool
	Notes   string
	Build   func(req rateRequest) map[string]any
}

var defaultShapes = []requestShape{
	{
		Name:    "area_ids",
		Enabled: true,
		Build: func(req rateRequest) map[string]any {
			return map[string]any{
				"origin_area_id":      req.Origin.ID,
				"destination_area_id": req.Destination.ID,
				"couriers":            strings.Join(req.Couriers, ","),
				"items":               packageItems(req.Items),
			}
		},
	},
	{
		Name:    "postal_codes",
		Enabled: true,
		Notes:   "used when an area id is not accepted for the route",
		Build: func(req rateRequest) map[string]any {
			return map[string]any{
				"origin_postal_code":      req.Origin.PostalCode,
				"destination_postal_code": req.Destination.PostalCode,
				"couriers":                strings.Join(req.Couriers, ","),
				"items":                   packageItems(req.Items),
			}
		},
	},
	{
		Name:    "mixed_area_postal",
		Enabled: true,
		Build: func(req rateRequest) map[string]any {
			return map[string]any{
				"origin_area_id":          req.Origin.ID,
				"destination_postal_code": req.Destination.PostalCode,
				"couriers":                strings.Join(req.Couriers, ","),
				"items":                   packageItems(req.Items),
			}
		},
	},
	{
		Name:    "aggregate_package",
		Enabled: false,
		Notes:   "carrier rejects a single aggregate parcel for multi-item carts",
		Build: func(req rateRequest) map[string]any {
			return map[string]any{
				"origin_area_id":      req.Origin.ID,
				"destination_area_id": req.Destination.ID,
				"couriers":            strings.Join(req.Couriers, ","),
				"weight":              req.Dimensions.Weight,
				"length":              req.Dimensions.Length,
				"width":               req.Dimensions.Width,
				"height":              req.Dimensions.Height,
				"value":               req.Dimensions.Value.Round(0).IntPart(),
			}
		},
	},
}

func packageItems(items []entities.PackageItem) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		value := it.Value
		if value.LessThan(MinItemValue) {
			value = MinItemValue
		}
		out = append(out, map[string]any{
			"name":     it.Name,
			"value":    value.Round(0).IntPart(),
			"quantity": it.Quantity,
			"weight":   max(it.Weight, MinItemWeight),
			"length":   max(it.Length, MinItemSide),
			"width":    max(it.Width, MinItemSide),
			"height":   max(it.Height, MinItemSide),
		})
	}
	return out
}
