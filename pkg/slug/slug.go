// Package slug genera identificadores legibles para URL a partir de títulos.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make convierte s en minúsculas separadas por guiones: "Camiseta Niño's 3D" -> "camiseta-ninos-3d".
// Se eliminan tildes y apóstrofes; las letras de otros alfabetos se conservan ("Футболка" -> "футболка").
// Cualquier otra secuencia no alfanumérica se colapsa a un guion. Un título solo de signos da "".
func Make(s string) string {
	folded, _, err := transform.String(foldAccents(), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r == '\'' || r == '’':
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return b.String()
}

// Valid indica si s ya está normalizado.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}

// foldAccents se construye en cada llamada: los transformers de x/text guardan estado.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
