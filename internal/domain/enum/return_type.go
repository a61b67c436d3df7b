package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReturnType distinguishes a refund-only line from an exchange line
type ReturnType int

const (
	ReturnTypeReturn   ReturnType = 0
	ReturnTypeExchange ReturnType = 1
)

func (t ReturnType) String() string {
	return [...]string{"Return", "Exchange"}[t]
}

func (t ReturnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ReturnType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ReturnType(i)
		return nil
	}
	switch str {
	case "Return":
		*t = ReturnTypeReturn
	case "Exchange":
		*t = ReturnTypeExchange
	}
	return nil
}

func (t ReturnType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ReturnType) Scan(value interface{}) error {
	if value == nil {
		*t = ReturnTypeReturn
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ReturnType(v)
	case int:
		*t = ReturnType(v)
	}
	return nil
}
