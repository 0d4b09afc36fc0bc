package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/shipping"
	"github.com/shopspring/decimal"
)

// Line is one requested product and quantity.
type Line struct {
	ProductID int64
	Quantity  int
}

// Quote is the server-side price of a set of lines shipped to one postal
// code. Both the shipping quote endpoint and order placement build it the
// same way, so the customer is charged what they were shown.
type Quote struct {
	Items       []entities.OrderItem
	Subtotal    decimal.Decimal
	Origin      entities.Area
	Destination entities.Area
	Rates       []entities.ShippingRate
}

// Price returns the unit price the quote used for a product.
func (q Quote) Price(productID int64) (decimal.Decimal, bool) {
	for _, it := range q.Items {
		if it.ProductID != nil && *it.ProductID == productID {
			return it.Price, true
		}
	}
	return decimal.Zero, false
}

type Totals struct {
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Insurance    decimal.Decimal
	Total        decimal.Decimal
}

type PricingConfig struct {
	OriginPostalCode string
	MinTotal         decimal.Decimal
	MaxTotal         decimal.Decimal
}

type PricingService struct {
	products ProductRepo
	rates    RateQuoter
	cfg      PricingConfig
}

func NewPricingService(products ProductRepo, rates RateQuoter, cfg PricingConfig) *PricingService {
	return &PricingService{
		products: products,
		rates:    rates,
		cfg:      cfg,
	}
}

func (p *PricingService) Quote(ctx context.Context, lines []Line, destPostal string) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, fmt.Errorf("%w: no items", entities.ErrInvalidOrder)
	}

	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return Quote{}, fmt.Errorf("%w: quantity for product %d", entities.ErrInvalidOrder, l.ProductID)
		}
		ids = append(ids, l.ProductID)
	}

	products, err := p.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return Quote{}, err
	}
	byID := indexProducts(products)

	items, err := snapshotItems(lines, byID)
	if err != nil {
		return Quote{}, err
	}

	subtotal := decimal.Zero
	packages := make([]entities.PackageItem, 0, len(items))
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal)
		packages = append(packages, entities.PackageItem{
			Name:     it.Name,
			Value:    it.Price,
			Quantity: it.Quantity,
			Weight:   it.Weight,
			Length:   it.Length,
			Width:    it.Width,
			Height:   it.Height,
		})
	}

	origin, err := p.area(ctx, p.cfg.OriginPostalCode, "origin")
	if err != nil {
		return Quote{}, err
	}
	dest, err := p.area(ctx, destPostal, "destination")
	if err != nil {
		return Quote{}, err
	}

	rates, err := p.rates.CalculateShippingRates(ctx, p.cfg.OriginPostalCode, destPostal, packages)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Items:       items,
		Subtotal:    subtotal,
		Origin:      origin,
		Destination: dest,
		Rates:       rates,
	}, nil
}

func (p *PricingService) area(ctx context.Context, postal, stage string) (entities.Area, error) {
	area, err := p.rates.GetAreaByPostalCode(ctx, postal)
	if err != nil {
		return entities.Area{}, err
	}
	if area == nil {
		return entities.Area{}, &shipping.AreaNotFoundError{PostalCode: postal, Stage: stage}
	}
	return *area, nil
}

// SelectRate finds the courier service the customer picked among freshly
// computed rates.
func (p *PricingService) SelectRate(rates []entities.ShippingRate, courierCode, serviceCode string) (entities.ShippingRate, error) {
	rate, ok := shipping.FindRate(rates, courierCode, serviceCode)
	if !ok {
		return entities.ShippingRate{}, fmt.Errorf("%w: %s %s", entities.ErrRateNotOffered, courierCode, serviceCode)
	}
	return rate, nil
}

func (p *PricingService) Totals(subtotal decimal.Decimal, rate entities.ShippingRate) (Totals, error) {
	t := Totals{
		Subtotal:     subtotal,
		ShippingCost: rate.Price,
		Insurance:    rate.InsuranceFee,
	}
	t.Total = t.Subtotal.Add(t.ShippingCost).Add(t.Insurance)

	if t.Total.LessThan(p.cfg.MinTotal) || t.Total.GreaterThan(p.cfg.MaxTotal) {
		return Totals{}, fmt.Errorf("%w: %s", entities.ErrTotalOutOfBounds, t.Total.StringFixed(2))
	}
	return t, nil
}

func indexProducts(products []entities.Product) map[int64]entities.Product {
	byID := make(map[int64]entities.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}

// snapshotItems freezes product data into order items, in the order the
// lines were given.
func snapshotItems(lines []Line, byID map[int64]entities.Product) ([]entities.OrderItem, error) {
	items := make([]entities.OrderItem, 0, len(lines))
	for _, l := range lines {
		product, ok := byID[l.ProductID]
		if !ok || !product.IsActive {
			return nil, fmt.Errorf("%w: %d", entities.ErrProductNotFound, l.ProductID)
		}
		id := product.ID
		items = append(items, entities.OrderItem{
			ProductID:   &id,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Quantity:    l.Quantity,
			Subtotal:    product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
			Weight:      product.Weight,
			Length:      product.Length,
			Width:       product.Width,
			Height:      product.Height,
		})
	}
	return items, nil
}

func sortedProductIDs(lines []Line) []int64 {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
