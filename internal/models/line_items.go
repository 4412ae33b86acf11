package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// LineItems maps a stringified product id to the requested quantity.
// Stored as JSONB.
type LineItems map[string]int

func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to scan LineItems: %v", value)
	}

	items := LineItems{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("failed to scan LineItems: %w", err)
	}
	*l = items
	return nil
}

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]int(l))
}
