package plants

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Plant is a plant offered by the store. Price is fixed-point money,
// persisted as NUMERIC(10,2).
type Plant struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Image string          `json:"image"`
	Price decimal.Decimal `json:"price"`
}

// MarshalJSON renders price with exactly two decimal places, so a
// plant created with 11.5 reads back as "11.50" everywhere.
func (p *Plant) MarshalJSON() ([]byte, error) {
	type wirePlant struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Image string `json:"image"`
		Price string `json:"price"`
	}
	return json.Marshal(wirePlant{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Image,
		Price: p.Price.StringFixed(2),
	})
}

// OptionalString is a JSON string field that records whether its key
// appeared in the payload, so an absent key and an explicit null can
// be told apart during validation.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	return json.Unmarshal(b, &o.Value)
}

// Empty reports whether the field is null or the empty string.
func (o OptionalString) Empty() bool {
	return o.Value == nil || *o.Value == ""
}

// Val returns the string, or "" for null.
func (o OptionalString) Val() string {
	if o.Value == nil {
		return ""
	}
	return *o.Value
}

// CreatePlantRequest is the payload for creating a plant. Price stays
// raw because clients may send it as a number or a string; it is
// parsed through its string form during validation.
type CreatePlantRequest struct {
	Name  OptionalString  `json:"name"`
	Image OptionalString  `json:"image"`
	Price json.RawMessage `json:"price"`
}
