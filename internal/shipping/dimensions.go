package shipping

import (
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/shopspring/decimal"
)

// Carriers reject parcels below these values, so every unit is priced at
// least at the floor.
const (
	MinItemWeight = 100 // grams
	MinItemSide   = 1   // centimetres
)

var MinItemValue = decimal.NewFromInt(10000)

// ComputeDimensions folds cart lines into one parcel: weights and values
// add up per unit, each side is the largest side of any item.
func ComputeDimensions(items []entities.PackageItem) entities.PackageDimensions {
	dims := entities.PackageDimensions{
		Length: MinItemSide,
		Width:  MinItemSide,
		Height: MinItemSide,
		Value:  decimal.Zero,
	}

	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			continue
		}
		dims.Weight += max(it.Weight, MinItemWeight) * qty
		dims.Length = max(dims.Length, it.Length)
		dims.Width = max(dims.Width, it.Width)
		dims.Height = max(dims.Height, it.Height)

		value := it.Value
		if value.LessThan(MinItemValue) {
			value = MinItemValue
		}
		dims.Value = dims.Value.Add(value.Mul(decimal.NewFromInt(int64(qty))))
	}

	if dims.Weight == 0 {
		dims.Weight = MinItemWeight
	}
	if dims.Value.IsZero() {
		dims.Value = MinItemValue
	}
	return dims
}
