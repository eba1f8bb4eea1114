package vars

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrUnsupportedVariableType is returned when a variable holds an array,
// a table or no value at all.
var ErrUnsupportedVariableType = errors.New("unsupported variable type")

// Location names BurntSushi/toml assigns to values without an offset.
const (
	localDatetimeZone = "datetime-local"
	localDateZone     = "date-local"
	localTimeZone     = "time-local"
)

// Placeholder returns the token that Substitute replaces for name.
func Placeholder(name string) string {
	return "$(" + name + ")"
}

// Substitute replaces $(name) with the stringified value of every variable
// in the table. Tokens naming unknown variables are left as they are.
// Every variable is stringified whether or not the command references it,
// so an array or table anywhere in the table fails every command.
func Substitute(command string, variables map[string]any) (string, error) {
	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, err := Stringify(variables[name])
		if err != nil {
			return "", fmt.Errorf("variable %q: %w", name, err)
		}
		command = strings.ReplaceAll(command, Placeholder(name), value)
	}
	return command, nil
}

// Stringify renders a scalar variable value.
func Stringify(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", v), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32:
		return formatFloat(float64(v), 32), nil
	case float64:
		return formatFloat(v, 64), nil
	case time.Time:
		return formatTimestamp(v), nil
	case []any:
		return "", fmt.Errorf("%w: arrays not supported as variables", ErrUnsupportedVariableType)
	case map[string]any:
		return "", fmt.Errorf("%w: tables not supported as variables", ErrUnsupportedVariableType)
	case nil:
		return "", fmt.Errorf("%w: variable has no value", ErrUnsupportedVariableType)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedVariableType, value)
	}
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

func formatTimestamp(t time.Time) string {
	switch t.Location().String() {
	case localDatetimeZone:
		return t.Format("2006-01-02T15:04:05.999999999")
	case localDateZone:
		return t.Format("2006-01-02")
	case localTimeZone:
		return t.Format("15:04:05.999999999")
	default:
		return t.Format(time.RFC3339Nano)
	}
}
