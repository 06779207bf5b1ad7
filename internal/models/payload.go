package models

import (
	"database/sql/driver"
	"fmt"
)

// JSONPayload is an opaque JSON document stored in a jsonb column. The cache
// layer never inspects its shape; it only has to round-trip intact between
// the oracle, the store and the response body.
type JSONPayload []byte

// MarshalJSON embeds the payload into the response verbatim.
func (p JSONPayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

func (p *JSONPayload) UnmarshalJSON(data []byte) error {
	*p = append((*p)[0:0], data...)
	return nil
}

// Value implements driver.Valuer for GORM.
func (p JSONPayload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	return string(p), nil
}

// Scan implements sql.Scanner for GORM.
func (p *JSONPayload) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = nil
	case []byte:
		cp := make([]byte, len(v))
		copy(cp, v)
		*p = cp
	case string:
		*p = JSONPayload(v)
	default:
		return fmt.Errorf("unsupported jsonb source type: %T", value)
	}
	return nil
}

func (JSONPayload) GormDataType() string {
	return "jsonb"
}
