// Package ident: derivación determinista de identificadores de almacenamiento
// a partir de nombres ingresados por el usuario. La misma entrada produce
// siempre el mismo identificador sin importar el punto de llamada.
package ident

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configura un Sanitizer.
type Option func(*Sanitizer)

// WithUnicodeFolding activa el plegado de diacríticos antes del saneo:
// NFD, eliminación de marcas combinantes, NFC y minúsculas Unicode.
// Por defecto solo se pasan a minúsculas las letras ASCII y el resto de
// caracteres se conserva tal cual.
func WithUnicodeFolding() Option {
	return func(s *Sanitizer) { s.fold = true }
}

// Sanitizer convierte nombres legibles en identificadores seguros para
// almacenamiento. El mapeo es puro, total e idempotente: nunca falla y
// sanear dos veces produce el mismo resultado que sanear una vez.
type Sanitizer struct {
	fold bool
}

// NewSanitizer construye un Sanitizer con las opciones dadas.
func NewSanitizer(opts ...Option) *Sanitizer {
	s := &Sanitizer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sanitize aplica la regla de saneo: recorta espacios en los extremos,
// colapsa cada corrida de espacios en un único '_' y pasa el resultado a
// minúsculas. Se usa tanto para acuñar el ID de una bodega desde su nombre
// como para construir claves compuestas de registros de stock.
func (s *Sanitizer) Sanitize(raw string) string {
	if s.fold {
		raw = foldDiacritics(raw)
	}
	trimmed := strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(trimmed))
	pendingSep := false
	for _, r := range trimmed {
		if unicode.IsSpace(r) {
			pendingSep = true
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		switch {
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		case s.fold:
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Sanitize sanea con la configuración por defecto (sin plegado Unicode).
func Sanitize(raw string) string {
	return defaultSanitizer.Sanitize(raw)
}

var defaultSanitizer = NewSanitizer()

// foldDiacritics descompone, elimina las marcas combinantes y recompone.
// Con esto "Ñuñoa" queda como "Nunoa" antes del paso a minúsculas.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
