package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrewwphillips/ntlango/internal/slug"
)

func TestMake(t *testing.T) {
	tests := map[string]struct {
		in, expected string
	}{
		"Empty":     {"", ""},
		"Simple":    {"Music", "music"},
		"Spaces":    {"  Jazz   Night ", "jazz-night"},
		"Accents":   {"Café Déjà Vu", "cafe-deja-vu"},
		"Symbols":   {"Arts & Crafts!", "arts-crafts"},
		"Digits":    {"Summer Fest 2024", "summer-fest-2024"},
		"OnlyPunct": {"!!!", ""},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, slug.Make(test.in))
		})
	}
}
