package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBase(t *testing.T) {
	cases := []struct {
		article, marque, genre string
		want                   string
	}{
		{"Jean", "Levis", "Homme", "JLH"},
		{"Veste cuir", "Zara", "Femme", "VCZF"},
		{"Robe d'été", "Naf Naf Paris", "Femme", "RDNNPF"},
		{"Blouson", "Schott", "", "BS"},
		{"", "", "Homme", "H"},
		{"", "", "", "REF"},
		{"   ", "---", "??", "REF"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BuildBase(tc.article, tc.marque, tc.genre),
			"article=%q marque=%q genre=%q", tc.article, tc.marque, tc.genre)
	}
}

func TestBuildBase_AcentosYGenero(t *testing.T) {
	// Los diacríticos se pliegan antes de tomar iniciales.
	assert.Equal(t, "EAF", BuildBase("Écharpe", "Agnès", "Femme"))
	// El genre solo aporta letra si empieza por H o F.
	assert.Equal(t, "JL", BuildBase("Jean", "Levis", "Unisexe"))
}

func TestSuffixAllocator_MonotonoPorBase(t *testing.T) {
	a := NewSuffixAllocator()
	a.Observe("JLH-2")
	a.Observe("JLH-5")
	a.Observe("VCZF-1")
	a.Observe("JLH")      // sin sufijo: no cuenta
	a.Observe("JLH-abc")  // sufijo no numérico: no cuenta

	assert.Equal(t, 6, a.Next("JLH"))
	assert.Equal(t, 7, a.Next("JLH"))
	assert.Equal(t, 2, a.Next("VCZF"))
	assert.Equal(t, 1, a.Next("NUEVA"))
}

func TestSuffixAllocator_NextBatch(t *testing.T) {
	a := NewSuffixAllocator()
	assert.Equal(t, []int{1, 2, 3}, a.NextBatch("JLH", 3))
	assert.Equal(t, []int{4, 5}, a.NextBatch("JLH", 2))
	assert.Empty(t, a.NextBatch("JLH", 0))
}

func TestSplitYBase(t *testing.T) {
	base, n, ok := Split("JLH-12")
	assert.True(t, ok)
	assert.Equal(t, "JLH", base)
	assert.Equal(t, 12, n)

	_, _, ok = Split("JLH")
	assert.False(t, ok)

	_, _, ok = Split("JLH-0")
	assert.False(t, ok, "el sufijo debe ser positivo")

	assert.Equal(t, "JLH", Base("JLH-12"))
	assert.Equal(t, "SANSSUFFIXE", Base("SANSSUFFIXE"))

	// Ambos cortan en el primer guion: un SKU con guiones extra no siembra
	// el asignador bajo una base distinta de la que ve la cache.
	_, _, ok = Split("A-B-2")
	assert.False(t, ok)
	assert.Equal(t, "A", Base("A-B-2"))

	a := NewSuffixAllocator()
	a.Observe("A-B-2")
	assert.Equal(t, 0, a.Highest("A-B"))
	assert.Equal(t, 0, a.Highest("A"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "JLH-4", Format("JLH", 4))
}
