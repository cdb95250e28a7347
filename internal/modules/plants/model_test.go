package plants_test

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/shopspring/decimal"

	"github.com/plantstore/plantstore-backend/internal/modules/plants"
)

func TestPlantMarshalKeepsTwoDecimalPlaces(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  string
	}{
		{name: "trailing zero preserved", price: "11.50", want: "11.50"},
		{name: "short form padded", price: "11.5", want: "11.50"},
		{name: "integer padded", price: "7", want: "7.00"},
		{name: "two decimals unchanged", price: "25.98", want: "25.98"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			p := &plants.Plant{
				ID:    1,
				Name:  "Aloe",
				Image: "./images/aloe.jpg",
				Price: decimal.RequireFromString(tt.price),
			}
			b, err := json.Marshal(p)
			c.Assert(err, qt.IsNil)
			c.Assert(string(b), qt.Equals,
				`{"id":1,"name":"Aloe","image":"./images/aloe.jpg","price":"`+tt.want+`"}`)
		})
	}
}

func TestPlantUnmarshalAcceptsStringPrice(t *testing.T) {
	c := qt.New(t)

	var p plants.Plant
	err := json.Unmarshal(
		[]byte(`{"id":2,"name":"ZZ Plant","image":"./images/zz-plant.jpg","price":"25.98"}`), &p)
	c.Assert(err, qt.IsNil)
	c.Assert(p.ID, qt.Equals, int64(2))
	c.Assert(p.Name, qt.Equals, "ZZ Plant")
	c.Assert(p.Price.Equal(decimal.RequireFromString("25.98")), qt.IsTrue)
}

func TestOptionalStringTracksPresence(t *testing.T) {
	c := qt.New(t)

	var req plants.CreatePlantRequest
	c.Assert(json.Unmarshal([]byte(`{}`), &req), qt.IsNil)
	c.Assert(req.Name.Set, qt.IsFalse)

	req = plants.CreatePlantRequest{}
	c.Assert(json.Unmarshal([]byte(`{"name": null}`), &req), qt.IsNil)
	c.Assert(req.Name.Set, qt.IsTrue)
	c.Assert(req.Name.Empty(), qt.IsTrue)

	req = plants.CreatePlantRequest{}
	c.Assert(json.Unmarshal([]byte(`{"name": ""}`), &req), qt.IsNil)
	c.Assert(req.Name.Set, qt.IsTrue)
	c.Assert(req.Name.Empty(), qt.IsTrue)

	req = plants.CreatePlantRequest{}
	c.Assert(json.Unmarshal([]byte(`{"name": "Aloe"}`), &req), qt.IsNil)
	c.Assert(req.Name.Set, qt.IsTrue)
	c.Assert(req.Name.Empty(), qt.IsFalse)
	c.Assert(req.Name.Val(), qt.Equals, "Aloe")
}

func TestOptionalStringRejectsNonStringValues(t *testing.T) {
	c := qt.New(t)

	var req plants.CreatePlantRequest
	err := json.Unmarshal([]byte(`{"name": 5}`), &req)
	c.Assert(err, qt.IsNotNil)
}
