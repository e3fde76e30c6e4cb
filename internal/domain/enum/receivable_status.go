package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReceivableStatus represents the collection status of a single receivable
type ReceivableStatus int

const (
	ReceivableStatusPending ReceivableStatus = 0
	ReceivableStatusPaid    ReceivableStatus = 1
)

func (s ReceivableStatus) String() string {
	return [...]string{"Pending", "Paid"}[s]
}

func (s ReceivableStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s ReceivableStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ReceivableStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReceivableStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ReceivableStatus(v)
	case int:
		*s = ReceivableStatus(v)
	}
	return nil
}

// BoletoStatus represents the lifecycle of an issued boleto
type BoletoStatus int

const (
	BoletoStatusOpen      BoletoStatus = 0
	BoletoStatusPaid      BoletoStatus = 1
	BoletoStatusOverdue   BoletoStatus = 2
	BoletoStatusCancelled BoletoStatus = 3
)

func (s BoletoStatus) String() string {
	return [...]string{"Open", "Paid", "Overdue", "Cancelled"}[s]
}

func (s BoletoStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s BoletoStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BoletoStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BoletoStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BoletoStatus(v)
	case int:
		*s = BoletoStatus(v)
	}
	return nil
}
