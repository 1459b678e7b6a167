// Package datefmt centraliza el formato y parseo de fechas de la aplicación.
//
// Las hojas de cálculo de origen mezclan fechas JJ/MM/AAAA, ISO, y seriales
// de Excel; aquí se acepta todo eso y se normaliza a un único formato de
// visualización.
package datefmt

import (
	"strconv"
	"strings"
	"time"
)

// DisplayFormat formato de visualización francés (JJ/MM/AAAA).
const DisplayFormat = "02/01/2006"

// inputFormats formatos aceptados al parsear texto, en orden de prioridad.
var inputFormats = []string{
	DisplayFormat,
	"2006-01-02",
	"02-01-2006",
	"02.01.2006",
}

// excelEpoch día cero del calendario serial de Excel (convención 1900 con el bug del año bisiesto).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Format devuelve la fecha en JJ/MM/AAAA, o "" si la fecha es cero.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayFormat)
}

// Today devuelve la fecha del día en formato de visualización.
func Today() string {
	return Format(time.Now())
}

// Parse interpreta un valor de fecha de origen usuario o Excel.
// Devuelve ok=false para vacíos y valores no reconocidos.
func Parse(value string) (time.Time, bool) {
	text := strings.TrimSpace(value)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range inputFormats {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	// Último recurso: serial de Excel (días desde el 30/12/1899)
	if serial, err := strconv.ParseFloat(text, 64); err == nil {
		return excelEpoch.AddDate(0, 0, int(serial)), true
	}
	return time.Time{}, false
}

// Normalize re-formatea cualquier valor parseable a JJ/MM/AAAA; si no se
// reconoce, devuelve el texto original sin tocar (dato de calidad dudosa,
// se conserva tal cual).
func Normalize(value string) string {
	if t, ok := Parse(value); ok {
		return Format(t)
	}
	return strings.TrimSpace(value)
}

// DaysBetween devuelve la diferencia en días entre dos fechas parseables,
// o 0 si alguna de las dos no se reconoce.
func DaysBetween(from, to string) int {
	start, ok1 := Parse(from)
	end, ok2 := Parse(to)
	if !ok1 || !ok2 {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}
