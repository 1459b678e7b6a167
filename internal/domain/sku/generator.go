// Package sku genera las références de base et les identifiants de stock.
//
// Una référence de base es un código corto derivado del artículo, la marca
// y el genre ("Jean" + "Levis" -> "JL"); cada pieza física recibe el SKU
// "BASE-N" con N estrictamente creciente por base.
package sku

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PlaceholderBase código fijo cuando artículo/marca/genre no aportan ninguna inicial.
const PlaceholderBase = "REF"

const (
	maxArticleInitials = 2
	maxBrandInitials   = 3
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// BuildBase deriva la référence de base: hasta 2 iniciales de los tokens del
// artículo + hasta 3 de los de la marca + la letra de genre (H/F, nada si el
// genre no empieza por una de las dos). Pura y determinista: mismos inputs,
// misma base, para que los SKU sean reproducibles entre reinicios.
func BuildBase(article, marque, genre string) string {
	var b strings.Builder
	b.WriteString(initials(article, maxArticleInitials))
	b.WriteString(initials(marque, maxBrandInitials))
	b.WriteString(genreLetter(genre))
	if b.Len() == 0 {
		return PlaceholderBase
	}
	return b.String()
}

// initials toma la primera letra de hasta max tokens, sin acentos ni signos.
func initials(text string, max int) string {
	var b strings.Builder
	for _, token := range strings.Fields(clean(text)) {
		if b.Len() >= max {
			break
		}
		b.WriteByte(token[0])
	}
	return b.String()
}

// genreLetter devuelve "H" o "F" según la primera letra del tag de genre.
func genreLetter(genre string) string {
	cleaned := clean(genre)
	if cleaned == "" {
		return ""
	}
	switch cleaned[0] {
	case 'H':
		return "H"
	case 'F':
		return "F"
	}
	return ""
}

// clean quita diacríticos y todo lo no alfanumérico, y pasa a mayúsculas.
// Conserva los espacios para no fusionar tokens.
func clean(text string) string {
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		folded = text
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(folded) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == ' ' || r == '\t' {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
