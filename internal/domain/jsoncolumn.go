package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSON(src interface{}, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
}

// TestCases is stored as a json column.
type TestCases []TestCase

func (t TestCases) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return jsonValue([]TestCase(t))
}

func (t *TestCases) Scan(src interface{}) error {
	return scanJSON(src, (*[]TestCase)(t))
}

// LanguageCode maps a language name to source code, stored as a json column.
type LanguageCode map[string]string

func (l LanguageCode) Value() (driver.Value, error) {
	if l == nil {
		return "{}", nil
	}
	return jsonValue(map[string]string(l))
}

func (l *LanguageCode) Scan(src interface{}) error {
	return scanJSON(src, (*map[string]string)(l))
}

// JSONDocument holds free-form json (examples) without interpreting it.
type JSONDocument json.RawMessage

func (d JSONDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "null", nil
	}
	return string(d), nil
}

func (d *JSONDocument) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = nil
	case []byte:
		*d = append((*d)[:0], v...)
	case string:
		*d = JSONDocument(v)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
	return nil
}

func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

func (d *JSONDocument) UnmarshalJSON(b []byte) error {
	*d = append((*d)[:0], b...)
	return nil
}
