package ledger

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceQuantity convierte una cantidad de origen arbitrario (formulario,
// cuerpo JSON, documento persistido) a un entero no negativo. Todo valor que
// no sea un entero >= 0 cae silenciosamente a 0: la entrada malformada se
// trata como reinicio a cero, nunca como error.
func CoerceQuantity(raw any) int64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return nonNegative(int64(v))
	case int8:
		return nonNegative(int64(v))
	case int16:
		return nonNegative(int64(v))
	case int32:
		return nonNegative(int64(v))
	case int64:
		return nonNegative(v)
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0
		}
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return 0
		}
		return int64(v)
	case float32:
		return coerceFloat(float64(v))
	case float64:
		return coerceFloat(v)
	case json.Number:
		return coerceString(v.String())
	case string:
		return coerceString(v)
	default:
		return 0
	}
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

// coerceFloat acepta solo flotantes que representan un entero no negativo
// dentro del rango de int64 (el decodificador JSON entrega float64).
func coerceFloat(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f < 0 || f != math.Trunc(f) || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

func coerceString(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
