package textfilter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-equipos/pkg/textfilter"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "manutencao", textfilter.Normalize("  Manutenção "))
	assert.Equal(t, "usuario", textfilter.Normalize("USUÁRIO"))
}

func TestQuery_Match(t *testing.T) {
	q := textfilter.New("furadeira")
	assert.True(t, q.Match("", "Furadeira de impacto"))
	assert.False(t, q.Match("Notebook", "Sala 2"))
	assert.True(t, textfilter.New("").Match("cualquiera"))
	assert.True(t, textfilter.New("sao paulo").Match("Depósito São Paulo"))
}

func TestFilter(t *testing.T) {
	items := []string{"Drill", "Notebook Dell", "Monitor"}
	got := textfilter.Filter(items, "DELL", func(s string) []string { return []string{s} })
	assert.Equal(t, []string{"Notebook Dell"}, got)
	assert.Len(t, textfilter.Filter(items, "", func(s string) []string { return []string{s} }), 3)
}
