// Package textfilter implementa el filtro de búsqueda local de los listados:
// subcadena sin distinguir mayúsculas ni acentos ("manutenção" encuentra "MANUTENCAO").
package textfilter

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize quita diacríticos y aplica case folding. Los transformers son stateful,
// por eso se crean en cada llamada.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}

// Query búsqueda normalizada una sola vez y aplicada a muchas filas.
type Query struct {
	needle string
}

// New prepara la búsqueda. Una búsqueda vacía coincide con todo.
func New(search string) Query {
	return Query{needle: Normalize(search)}
}

// Empty informa si no hay filtro.
func (q Query) Empty() bool { return q.needle == "" }

// Match es true si alguno de los campos contiene la búsqueda.
func (q Query) Match(fields ...string) bool {
	if q.needle == "" {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(Normalize(f), q.needle) {
			return true
		}
	}
	return false
}

// Filter devuelve los elementos cuyos campos coinciden con search.
func Filter[T any](items []T, search string, fields func(T) []string) []T {
	q := New(search)
	if q.Empty() {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if q.Match(fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}
