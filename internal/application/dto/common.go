package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
)

// DateLayout formato de fechas de calendario en la API (UTC).
const DateLayout = "2006-01-02"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Details lleva los campos inválidos o los saldos del faltante.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ParseDate interpreta "YYYY-MM-DD" como día UTC.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe tener formato %s", domain.ErrInvalidInput, field, DateLayout)
	}
	return t, nil
}

// FormatDate inverso de ParseDate.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
