package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Images is an ordered list of image references stored as a JSON text array.
type Images []string

// EncodeImages serializes images for storage. A nil list is stored as "[]".
func EncodeImages(images []string) string {
	if images == nil {
		return "[]"
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeImages never fails: empty or malformed input yields an empty list.
func DecodeImages(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.Warn("malformed_images_column", "length", len(raw), "error", err)
		return []string{}
	}
	if out == nil {
		return []string{}
	}
	return out
}

func (i Images) Value() (driver.Value, error) {
	return EncodeImages(i), nil
}

func (i *Images) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*i = Images{}
	case string:
		*i = DecodeImages(v)
	case []byte:
		*i = DecodeImages(string(v))
	default:
		slog.Warn("malformed_images_column", "type", fmt.Sprintf("%T", value))
		*i = Images{}
	}
	return nil
}

func (i Images) MarshalJSON() ([]byte, error) {
	if i == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(i))
}
