package datefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FormatosAceptados(t *testing.T) {
	want := time.Date(2026, time.May, 12, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"12/05/2026", "2026-05-12", "12-05-2026", "12.05.2026"} {
		got, ok := Parse(input)
		require.True(t, ok, "entrada %q", input)
		assert.True(t, want.Equal(got), "entrada %q: obtenido %s", input, got)
	}
}

func TestParse_SerialExcel(t *testing.T) {
	// 45292 días desde el 30/12/1899 = 01/01/2024.
	got, ok := Parse("45292")
	require.True(t, ok)
	assert.Equal(t, "01/01/2024", Format(got))
}

func TestParse_Invalidos(t *testing.T) {
	for _, input := range []string{"", "   ", "demain", "32/13/2026"} {
		_, ok := Parse(input)
		assert.False(t, ok, "entrada %q no debe parsear", input)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "12/05/2026", Normalize("2026-05-12"))
	// Lo no reconocido se conserva recortado, no se pierde.
	assert.Equal(t, "en attente", Normalize("  en attente "))
	assert.Equal(t, "", Normalize("   "))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 9, DaysBetween("01/05/2026", "10/05/2026"))
	assert.Equal(t, -9, DaysBetween("10/05/2026", "01/05/2026"))
	assert.Equal(t, 0, DaysBetween("01/05/2026", "???"))
}

func TestFormat_FechaCero(t *testing.T) {
	assert.Equal(t, "", Format(time.Time{}))
}
