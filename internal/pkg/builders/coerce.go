package builders

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

var errMissingValue = errors.New("value is required")

// CoerceFloat accepts a JSON number or a numeric string and returns it as float64.
func CoerceFloat(value interface{}) (float64, error) {
	var (
		parsed float64
		err    error
	)

	switch v := value.(type) {
	case nil:
		return 0, errMissingValue
	case float64:
		parsed = v
	case float32:
		parsed = float64(v)
	case int:
		parsed = float64(v)
	case int64:
		parsed = float64(v)
	case json.Number:
		parsed, err = v.Float64()
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, errMissingValue
		}
		parsed, err = strconv.ParseFloat(trimmed, 64)
	default:
		return 0, fmt.Errorf("unsupported value type %T", value)
	}

	if err != nil {
		return 0, err
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, fmt.Errorf("value %v is not a finite number", value)
	}
	return parsed, nil
}
