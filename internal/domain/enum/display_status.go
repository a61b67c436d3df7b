package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DisplayStatus represents the status of a shelf placement. A placement
// whose quantity was fully moved to another shelf becomes inactive but is
// retained, distinguishing "moved away" from "never placed".
type DisplayStatus int

const (
	DisplayStatusActive   DisplayStatus = 0
	DisplayStatusInactive DisplayStatus = 1
)

func (s DisplayStatus) String() string {
	return [...]string{"Active", "Inactive"}[s]
}

func (s DisplayStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DisplayStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DisplayStatus(i)
		return nil
	}
	switch str {
	case "Active":
		*s = DisplayStatusActive
	case "Inactive":
		*s = DisplayStatusInactive
	}
	return nil
}

func (s DisplayStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DisplayStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DisplayStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DisplayStatus(v)
	case int:
		*s = DisplayStatus(v)
	}
	return nil
}
