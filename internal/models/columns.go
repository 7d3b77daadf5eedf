package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Value types stored as JSON text columns. A product row keeps its whole
// variant list, so a single-row write is the unit of atomicity for stock.

type Variant struct {
	Unit     string `json:"unit"`
	Price    int64  `json:"price"`
	Discount int64  `json:"discount"`
	Stock    int64  `json:"stock"`
}

type Variants []Variant

func (v Variants) Value() (driver.Value, error) { return jsonValue(v, v == nil) }
func (v *Variants) Scan(src any) error          { return jsonScan(src, v) }

type Address struct {
	ID       string `json:"id,omitempty"`
	Label    string `json:"label,omitempty"`
	FullName string `json:"fullName"`
	Phone    string `json:"phoneNumber,omitempty"`
	HouseNo  string `json:"houseNo"`
	RoadName string `json:"roadName"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark,omitempty"`
}

func (a Address) Value() (driver.Value, error) { return jsonValue(a, false) }
func (a *Address) Scan(src any) error          { return jsonScan(src, a) }

type Addresses []Address

func (a Addresses) Value() (driver.Value, error) { return jsonValue(a, a == nil) }
func (a *Addresses) Scan(src any) error          { return jsonScan(src, a) }

// OrderItem is a cart line frozen into an order.
type OrderItem struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Unit          string `json:"unit,omitempty"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"original_price"`
	Quantity      int64  `json:"quantity"`
}

type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) { return jsonValue(o, o == nil) }
func (o *OrderItems) Scan(src any) error          { return jsonScan(src, o) }

type DiscountDetails struct {
	Code    string `json:"code"`
	Percent int64  `json:"percent"`
	Amount  int64  `json:"amount"`
}

func (d DiscountDetails) Value() (driver.Value, error) { return jsonValue(d, false) }
func (d *DiscountDetails) Scan(src any) error          { return jsonScan(src, d) }

type CartLine struct {
	Key           string `json:"key"`
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Unit          string `json:"unit,omitempty"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"original_price"`
	Quantity      int64  `json:"quantity"`
	StockCeiling  int64  `json:"stock_ceiling"`
}

type CartLines []CartLine

func (c CartLines) Value() (driver.Value, error) { return jsonValue(c, c == nil) }
func (c *CartLines) Scan(src any) error          { return jsonScan(src, c) }

func jsonValue(v any, emptyList bool) (driver.Value, error) {
	if emptyList {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src any, dst any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}
