package req

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode читает JSON из тела запроса или ответа в значение типа T
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("decode json: %w", err)
	}
	return payload, nil
}
