package shipping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

const areasPath = "/v1/maps/areas"

func areaQuery(input string) url.Values {
	q := url.Values{}
	q.Set("countries", "ID")
	q.Set("input", input)
	q.Set("type", "single")
	return q
}

type areaPayload struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Country    string          `json:"country_name"`
	Level1     string          `json:"administrative_division_level_1_name"`
	Level2     string          `json:"administrative_division_level_2_name"`
	Level3     string          `json:"administrative_division_level_3_name"`
	PostalCode json.RawMessage `json:"postal_code"`
}

type areasResponse struct {
	Success bool          `json:"success"`
	Areas   []areaPayload `json:"areas"`
}

func decodeAreas(data []byte) ([]areaPayload, error) {
	var resp areasResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode areas: %w", ErrUpstreamRejected, err)
	}
	return resp.Areas, nil
}

// postal codes come back as numbers or strings depending on the area.
func (a areaPayload) postalCode() string {
	raw := bytes.TrimSpace(a.PostalCode)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return fmt.Sprintf("%05d", i)
		}
	}
	return ""
}
