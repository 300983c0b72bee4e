package postgres

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// jsonValue renders an arbitrary decoded value as a JSON string for a jsonb
// column. A nil value stays nil so the column lands as SQL NULL.
func jsonValue(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	encoded, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	out := string(encoded)
	return &out, nil
}
