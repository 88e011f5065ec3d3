package postgres

import (
	"database/sql"
	"errors"
	"strings"

	sonic "github.com/bytedance/sonic"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func encodeMetricMap(value map[string]float64) string {
	if len(value) == 0 {
		return "{}"
	}
	encoded, err := sonic.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}

func decodeMetricMap(raw string) map[string]float64 {
	raw = strings.TrimSpace(raw)
	out := make(map[string]float64)
	if raw == "" {
		return out
	}
	if err := sonic.Unmarshal([]byte(raw), &out); err != nil {
		return map[string]float64{}
	}
	return out
}
