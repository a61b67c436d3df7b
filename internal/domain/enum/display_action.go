package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DisplayAction identifies the kind of shelf mutation recorded in a display log
type DisplayAction int

const (
	DisplayActionAdd               DisplayAction = 0
	DisplayActionAdjust            DisplayAction = 1
	DisplayActionMove              DisplayAction = 2
	DisplayActionRemove            DisplayAction = 3
	DisplayActionReturnToInventory DisplayAction = 4
)

func (a DisplayAction) String() string {
	return [...]string{"ADD", "ADJUST", "MOVE", "REMOVE", "RETURN_TO_INVENTORY"}[a]
}

func (a DisplayAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *DisplayAction) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*a = DisplayAction(i)
		return nil
	}
	switch str {
	case "ADD":
		*a = DisplayActionAdd
	case "ADJUST":
		*a = DisplayActionAdjust
	case "MOVE":
		*a = DisplayActionMove
	case "REMOVE":
		*a = DisplayActionRemove
	case "RETURN_TO_INVENTORY":
		*a = DisplayActionReturnToInventory
	}
	return nil
}

func (a DisplayAction) Value() (driver.Value, error) {
	return int64(a), nil
}

func (a *DisplayAction) Scan(value interface{}) error {
	if value == nil {
		*a = DisplayActionAdd
		return nil
	}
	switch v := value.(type) {
	case int64:
		*a = DisplayAction(v)
	case int:
		*a = DisplayAction(v)
	}
	return nil
}
