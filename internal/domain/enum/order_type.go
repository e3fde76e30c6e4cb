package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderType distinguishes wholesale orders from retail counter sales.
// Base prices differ per type.
type OrderType int

const (
	OrderTypeWholesale OrderType = 0
	OrderTypeRetail    OrderType = 1
)

func (t OrderType) String() string {
	return [...]string{"Wholesale", "Retail"}[t]
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = OrderType(i)
		return nil
	}
	switch str {
	case "Wholesale":
		*t = OrderTypeWholesale
	case "Retail":
		*t = OrderTypeRetail
	}
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	if value == nil {
		*t = OrderTypeWholesale
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = OrderType(v)
	case int:
		*t = OrderType(v)
	}
	return nil
}
