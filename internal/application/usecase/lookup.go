package usecase

import "github.com/google/uuid"

// Lookup estrategia de búsqueda de un producto a partir de un término libre.
// Las únicas variantes son LookupByID y LookupByText.
type Lookup interface {
	isLookup()
}

// LookupByID busca por clave primaria.
type LookupByID struct {
	ID uuid.UUID
}

// LookupByText busca por título o slug sin distinguir mayúsculas.
type LookupByText struct {
	Text string
}

func (LookupByID) isLookup()   {}
func (LookupByText) isLookup() {}

// ParseLookup elige la estrategia: un UUID canónico (8-4-4-4-12) busca por ID; cualquier otra cosa por texto.
func ParseLookup(term string) Lookup {
	if id, ok := parseUUID(term); ok {
		return LookupByID{ID: id}
	}
	return LookupByText{Text: term}
}

// parseUUID acepta solo la forma canónica de 36 caracteres; uuid.Parse también admitiría
// urn:uuid:, llaves o 32 hex sin guiones.
func parseUUID(s string) (uuid.UUID, bool) {
	if len(s) != 36 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
