package textsearch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ordersync-api/pkg/textsearch"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "pena", textsearch.Fold("Peña"))
	assert.Equal(t, "jose", textsearch.Fold("JOSÉ"))
	assert.Equal(t, "strasse", textsearch.Fold("STRASSE"))
}

func TestMatches(t *testing.T) {
	assert.True(t, textsearch.Matches("", "cualquier cosa"), "consulta vacía coincide con todo")
	assert.True(t, textsearch.Matches("  ", "x"))
	assert.True(t, textsearch.Matches("ana", "Pedido de Ana María"))
	assert.True(t, textsearch.Matches("maria", "Ana María"), "sin tildes debe coincidir")
	assert.True(t, textsearch.Matches("ROSAS", "12 rosas rojas"))
	assert.True(t, textsearch.Matches("juan", "otro contenido", "Juan Pérez"), "coincide con el segundo campo")
	assert.False(t, textsearch.Matches("tulipanes", "12 rosas rojas", "Juan"))
}
