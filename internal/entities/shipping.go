package entities

import "github.com/shopspring/decimal"

// Area is a carrier-side location resolved from a postal code or keyword.
type Area struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Country    string `json:"country_name,omitempty"`
	Province   string `json:"province,omitempty"`
	City       string `json:"city,omitempty"`
	District   string `json:"district,omitempty"`
	PostalCode string `json:"postal_code"`
}

type ShippingRate struct {
	CourierName        string          `json:"courier_name"`
	CourierCode        string          `json:"courier_code"`
	CourierServiceName string          `json:"courier_service_name"`
	CourierServiceCode string          `json:"courier_service_code"`
	Price              decimal.Decimal `json:"price"`
	Duration           string          `json:"duration"`
	Description        string          `json:"description,omitempty"`
	InsuranceFee       decimal.Decimal `json:"insurance_fee"`
}

// PackageItem is one priced cart line as the carrier sees it.
type PackageItem struct {
	Name     string
	Value    decimal.Decimal
	Quantity int
	Weight   int
	Length   int
	Width    int
	Height   int
}

// PackageDimensions describes the whole parcel for a rate request.
type PackageDimensions struct {
	Weight int             `json:"weight"`
	Length int             `json:"length"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Value  decimal.Decimal `json:"value"`
}
