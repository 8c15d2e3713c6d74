// Package textsearch normaliza texto para búsquedas insensibles a mayúsculas y tildes.
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s sin marcas diacríticas y en case-folding Unicode ("Peña" -> "pena").
// Los transformers no son seguros entre goroutines, por eso se crean en cada llamada.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// Matches indica si alguno de los campos contiene la consulta (ya normalizados).
// Una consulta vacía coincide con todo.
func Matches(query string, fields ...string) bool {
	q := strings.TrimSpace(Fold(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), q) {
			return true
		}
	}
	return false
}
