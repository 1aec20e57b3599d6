package amqp

import (
	"encoding/json"
	"time"
)

// BudgetAlertMessage is the event published when a budget crosses into a
// warning or danger state. It carries the evaluated numbers so consumers need
// no database access.
type BudgetAlertMessage struct {
	Account    string    `json:"account"`
	BudgetID   string    `json:"budget_id"`
	Category   string    `json:"category"`
	State      string    `json:"state"`
	Progress   float64   `json:"progress"`
	SpentCents int64     `json:"spent_cents"`
	LimitCents int64     `json:"limit_cents"`
	Timestamp  time.Time `json:"timestamp"`
}

func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
