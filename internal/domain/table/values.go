package table

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal interpreta un valor monetario de hoja de cálculo.
// Tolera coma decimal, espacios y el símbolo €; cualquier cosa no numérica
// degrada a cero, las hojas de origen traen celdas con texto libre.
func ParseDecimal(value string) decimal.Decimal {
	text := strings.TrimSpace(value)
	if text == "" {
		return decimal.Zero
	}
	text = strings.ReplaceAll(text, "€", "")
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, ",", ".")
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatDecimal serializa un decimal redondeado a 2 para escribirlo en una fila.
func FormatDecimal(d decimal.Decimal) string {
	return d.Round(2).String()
}

// ParseInt interpreta un entero de hoja de cálculo: acepta "3", "3.0",
// " 4 "; rechaza vacíos, no numéricos y flotantes no enteros.
func ParseInt(value string) (int, bool) {
	text := strings.TrimSpace(value)
	if text == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(text, ",", "."))
	if err != nil {
		return 0, false
	}
	if !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}

// IntOrZero variante de ParseInt para contextos donde la ausencia vale cero.
func IntOrZero(value string) int {
	n, _ := ParseInt(value)
	return n
}
