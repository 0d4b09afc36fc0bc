package shipping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/shopspring/decimal"
)

const (
	maxSearchDepth  = 6
	defaultDuration = "Estimasi tidak tersedia"
)

// Grouped amounts as carriers print them: "15.000,50" or "15,000.50".
var (
	dotGrouped   = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+(,\d+)?$`)
	commaGrouped = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)
	commaDecimal = regexp.MustCompile(`^-?\d+,\d{1,2}$`)
)

// Keys checked first, in order, before the recursive search.
var rateListKeys = []string{"pricing", "rates", "data", "results", "couriers", "services"}

// Attribute aliases seen across carrier API versions, most specific first.
var (
	courierNameKeys = []string{"courier_name", "courierName", "company_name", "company", "courier", "carrier"}
	courierCodeKeys = []string{"courier_code", "courierCode", "company_code", "carrier_code"}
	serviceNameKeys = []string{"courier_service_name", "service_name", "serviceName", "service", "service_type", "type"}
	serviceCodeKeys = []string{"courier_service_code", "service_code", "serviceCode"}
	priceKeys       = []string{"price", "final_price", "total_price", "shipping_fee", "cost", "rate", "amount"}
	availableKeys   = []string{"available", "is_available", "availability", "status"}
	durationKeys    = []string{"duration", "etd", "estimated_delivery", "delivery_time", "shipment_duration"}
	descriptionKeys = []string{"description", "desc", "service_description"}
	insuranceKeys   = []string{"insurance_fee", "insuranceFee", "insurance"}
)

// NormalizeRates finds the rate list in an arbitrary carrier payload and
// maps every usable entry to a ShippingRate, cheapest first.
func NormalizeRates(payload []byte) ([]entities.ShippingRate, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode rates payload: %w", err)
	}

	rates := []entities.ShippingRate{}
	for _, raw := range findRateList(root) {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if rate, ok := extractRate(entry); ok {
			rates = append(rates, rate)
		}
	}

	SortRates(rates)
	return rates, nil
}

func SortRates(rates []entities.ShippingRate) {
	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].Price.LessThan(rates[j].Price)
	})
}

func findRateList(root any) []any {
	if m, ok := root.(map[string]any); ok {
		for _, key := range rateListKeys {
			if list, ok := m[key].([]any); ok && looksLikeRateList(list) {
				return list
			}
		}
	}
	return searchRateList(root, 0)
}

func searchRateList(node any, depth int) []any {
	if depth > maxSearchDepth {
		return nil
	}
	switch v := node.(type) {
	case []any:
		if looksLikeRateList(v) {
			return v
		}
		for _, child := range v {
			if found := searchRateList(child, depth+1); found != nil {
				return found
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if found := searchRateList(v[k], depth+1); found != nil {
				return found
			}
		}
	}
	return nil
}

func looksLikeRateList(list []any) bool {
	if len(list) == 0 {
		return false
	}
	first, ok := list[0].(map[string]any)
	if !ok {
		return false
	}
	_, hasPrice := firstDecimal(first, priceKeys)
	return hasPrice && (firstString(first, courierNameKeys) != "" || firstString(first, serviceNameKeys) != "")
}

// extractRate maps one entry; false means the entry is unusable.
func extractRate(m map[string]any) (entities.ShippingRate, bool) {
	if !isAvailable(m) {
		return entities.ShippingRate{}, false
	}

	courier := firstString(m, courierNameKeys)
	service := firstString(m, serviceNameKeys)
	price, ok := firstDecimal(m, priceKeys)
	if courier == "" || service == "" || !ok || !price.IsPositive() {
		return entities.ShippingRate{}, false
	}

	rate := entities.ShippingRate{
		CourierName:        courier,
		CourierCode:        firstString(m, courierCodeKeys),
		CourierServiceName: service,
		CourierServiceCode: firstString(m, serviceCodeKeys),
		Price:              price,
		Duration:           duration(m),
		Description:        firstString(m, descriptionKeys),
		InsuranceFee:       decimal.Zero,
	}
	if rate.CourierCode == "" {
		rate.CourierCode = slug(courier)
	}
	if rate.CourierServiceCode == "" {
		rate.CourierServiceCode = slug(service)
	}
	if fee, ok := firstDecimal(m, insuranceKeys); ok && fee.IsPositive() {
		rate.InsuranceFee = fee
	}
	return rate, true
}

func isAvailable(m map[string]any) bool {
	for _, key := range availableKeys {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case bool:
			return val
		case string:
			switch strings.ToLower(val) {
			case "false", "unavailable", "not_available", "inactive":
				return false
			}
		}
		return true
	}
	return true
}

var durationUnits = map[string]string{
	"days":  "hari",
	"day":   "hari",
	"hours": "jam",
	"hour":  "jam",
}

func duration(m map[string]any) string {
	if rng := firstString(m, []string{"shipment_duration_range"}); rng != "" {
		unit := strings.ToLower(firstString(m, []string{"shipment_duration_unit"}))
		if translated, ok := durationUnits[unit]; ok {
			unit = translated
		}
		return strings.TrimSpace(rng + " " + unit)
	}
	if d := firstString(m, durationKeys); d != "" {
		return d
	}
	return defaultDuration
}

// firstString returns the first non-empty alias value. A nested object is
// read through its own name or code.
func firstString(m map[string]any, keys []string) string {
	for _, key := range keys {
		if s := asString(m[key]); s != "" {
			return s
		}
	}
	return ""
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case map[string]any:
		return firstString(val, []string{"name", "code"})
	}
	return ""
}

func firstDecimal(m map[string]any, keys []string) (decimal.Decimal, bool) {
	for _, key := range keys {
		if d, ok := asDecimal(m[key]); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}

func asDecimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		return d, err == nil
	case string:
		return parseAmount(val)
	case float64:
		return decimal.NewFromFloat(val), true
	case map[string]any:
		return firstDecimal(val, []string{"value", "amount", "price"})
	}
	return decimal.Zero, false
}

// parseAmount reads a price printed as text, such as "Rp 15.000" or
// "IDR 15,000.00". Ambiguous separators are rejected rather than guessed.
func parseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, s)
	// "Rp." leaves a leading dot behind.
	cleaned = strings.Trim(cleaned, ".,")

	switch {
	case cleaned == "":
		return decimal.Zero, false
	case dotGrouped.MatchString(cleaned):
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case commaGrouped.MatchString(cleaned):
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case commaDecimal.MatchString(cleaned):
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case strings.ContainsRune(cleaned, ','):
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(cleaned)
	return d, err == nil
}

// slug turns a display name into a lowercase code.
func slug(s string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// FindRate returns the rate matching the courier and service codes.
func FindRate(rates []entities.ShippingRate, courierCode, serviceCode string) (entities.ShippingRate, bool) {
	idx := slices.IndexFunc(rates, func(r entities.ShippingRate) bool {
		return strings.EqualFold(r.CourierCode, courierCode) && strings.EqualFold(r.CourierServiceCode, serviceCode)
	})
	if idx < 0 {
		return entities.ShippingRate{}, false
	}
	return rates[idx], true
}
