// internal/service/neighborhood/slug_test.go

package neighborhood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ottensen", "ottensen"},
		{"St. Pauli", "st-pauli"},
		{"Eimsbüttel", "eimsbuettel"},
		{"Neukölln", "neukoelln"},
		{"Prenzlauer Berg", "prenzlauer-berg"},
		{"  Schöne  Aussicht  ", "schoene-aussicht"},
		{"Groß-Borstel", "gross-borstel"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}
