package enum

import (
	"encoding/json"
	"fmt"
)

// decodeCode reads a JSON string and checks it against the allowed codes.
func decodeCode[T ~string](data []byte, valid func(T) bool, kind string) (T, error) {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return "", fmt.Errorf("%s must be a string: %w", kind, err)
	}
	v := T(str)
	if !valid(v) {
		return "", fmt.Errorf("invalid %s %q", kind, str)
	}
	return v, nil
}
