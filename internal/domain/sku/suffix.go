package sku

import (
	"fmt"
	"strconv"
	"strings"
)

// SuffixAllocator reparte los sufijos numéricos por référence de base.
// Guarda el máximo emitido por base; se siembra una única vez escaneando los
// SKU existentes y después solo se incrementa en memoria. El máximo nunca
// baja: un sufijo no se reutiliza aunque la pieza se borre.
type SuffixAllocator struct {
	highest map[string]int
}

// NewSuffixAllocator crea un asignador vacío.
func NewSuffixAllocator() *SuffixAllocator {
	return &SuffixAllocator{highest: make(map[string]int)}
}

// Observe registra un SKU existente con forma "BASE-N". Los sufijos no
// numéricos se ignoran; los SKU sin guion también.
func (a *SuffixAllocator) Observe(skuValue string) {
	base, n, ok := Split(skuValue)
	if !ok {
		return
	}
	if n > a.highest[base] {
		a.highest[base] = n
	}
}

// Next emite el siguiente sufijo para la base y lo marca como consumido.
func (a *SuffixAllocator) Next(base string) int {
	a.highest[base]++
	return a.highest[base]
}

// NextBatch emite n sufijos consecutivos para la base.
func (a *SuffixAllocator) NextBatch(base string, n int) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, a.Next(base))
	}
	return out
}

// Highest devuelve el sufijo más alto emitido u observado para la base.
func (a *SuffixAllocator) Highest(base string) int {
	return a.highest[base]
}

// Reset vacía el asignador (antes de un re-escaneo completo).
func (a *SuffixAllocator) Reset() {
	a.highest = make(map[string]int)
}

// Format compone el SKU "BASE-N".
func Format(base string, suffix int) string {
	return fmt.Sprintf("%s-%d", base, suffix)
}

// Split separa "BASE-N" en base y sufijo numérico, cortando en el primer
// guion, la misma convención que Base. ok=false si no hay guion o lo que
// sigue al guion no es un entero positivo.
func Split(skuValue string) (base string, suffix int, ok bool) {
	trimmed := strings.TrimSpace(skuValue)
	i := strings.Index(trimmed, "-")
	if i <= 0 || i == len(trimmed)-1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(trimmed[i+1:])
	if err != nil || n <= 0 {
		return "", 0, false
	}
	return trimmed[:i], n, true
}

// Base devuelve la référence de base de un SKU: la parte antes del primer
// guion, o el SKU entero si no tiene guion.
func Base(skuValue string) string {
	trimmed := strings.TrimSpace(skuValue)
	if i := strings.Index(trimmed, "-"); i > 0 {
		return strings.TrimSpace(trimmed[:i])
	}
	return trimmed
}
