package entity

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// jsonColumnType picks jsonb on postgres and text elsewhere.
func jsonColumnType(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "TEXT"
}

func scanJSON(value interface{}, dest interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into %T", value, dest)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}
