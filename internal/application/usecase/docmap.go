package usecase

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/domain/ledger"
)

// Helpers para mapear documentos planos del almacén a tipos del dominio.
// Un campo ausente o malformado se lee como el valor cero del tipo.

func docString(doc docstore.Doc, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docTime(doc docstore.Doc, key string) time.Time {
	s, ok := doc[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func docInt64(doc docstore.Doc, key string) int64 {
	return ledger.CoerceQuantity(doc[key])
}

func docDecimal(doc docstore.Doc, key string) decimal.Decimal {
	switch v := doc[key].(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	default:
		return decimal.Zero
	}
}

// numberValue serializa un decimal como número JSON exacto (sin comillas y
// sin pasar por float64).
func numberValue(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
