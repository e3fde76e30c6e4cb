package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod identifies how one slice of an order is paid.
type PaymentMethod int

const (
	PaymentMethodCash        PaymentMethod = 0
	PaymentMethodPix         PaymentMethod = 1
	PaymentMethodCreditCard  PaymentMethod = 2
	PaymentMethodDebitCard   PaymentMethod = 3
	PaymentMethodBoleto      PaymentMethod = 4
	PaymentMethodStoreCredit PaymentMethod = 5
)

var paymentMethodNames = [...]string{"Cash", "Pix", "CreditCard", "DebitCard", "Boleto", "StoreCredit"}

func (m PaymentMethod) String() string {
	if int(m) < 0 || int(m) >= len(paymentMethodNames) {
		return fmt.Sprintf("PaymentMethod(%d)", int(m))
	}
	return paymentMethodNames[m]
}

// IsValid reports whether m is a supported payment method.
func (m PaymentMethod) IsValid() bool {
	return int(m) >= 0 && int(m) < len(paymentMethodNames)
}

// IsCard reports whether the slice clears through a card acquirer.
func (m PaymentMethod) IsCard() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodDebitCard
}

// ConsumesCredit reports whether the slice defers payment and therefore
// counts against the payer's credit limit check.
func (m PaymentMethod) ConsumesCredit() bool {
	return m == PaymentMethodBoleto || m == PaymentMethodStoreCredit
}

// SettlesImmediately reports whether funds can be confirmed at sale time.
// Card funds clear later through the acquirer, so cards never qualify.
func (m PaymentMethod) SettlesImmediately() bool {
	return m == PaymentMethodCash || m == PaymentMethodPix
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	for i, name := range paymentMethodNames {
		if name == str {
			*m = PaymentMethod(i)
			return nil
		}
	}
	return fmt.Errorf("unknown payment method %q", str)
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
