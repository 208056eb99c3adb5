package dto

// DefaultPageLimit límite cuando la petición no lo indica.
const DefaultPageLimit = 10

// PageRequest paginación por offset/limit. Limit no tiene tope superior.
type PageRequest struct {
	Limit  int `query:"limit" validate:"gte=0"`
	Offset int `query:"offset" validate:"gte=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o negativos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse cuerpo de /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
