package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateOrderNumber generates a unique order number
func GenerateOrderNumber() string {
	return "PED-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateBoletoNumber generates a unique boleto document number. It is
// also the idempotency code sent to the billing provider.
func GenerateBoletoNumber() string {
	return "BOL-" + strings.ToUpper(uuid.New().String()[:8])
}
