package table

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks descompone y elimina los diacríticos (É -> E, Ê -> E...).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader reduce una cabecera a su forma comparable: minúsculas,
// sin acentos, solo alfanuméricos. "QUANTITÉ RECUE" y "QUANTITE RECUE"
// normalizan igual, por eso resuelven a la misma columna física.
func NormalizeHeader(header string) string {
	folded, _, err := transform.String(stripMarks, header)
	if err != nil {
		folded = header
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
