package rates

import "errors"

// Errores de validación de BulkConfig. Son precondiciones: bloquean el preview
// y el apply, nunca se producen durante el cálculo en sí.
var (
	ErrNoOperation     = errors.New("rates: operación no especificada")
	ErrNoSourceArticle = errors.New("rates: copy_from requiere artículo origen")
	ErrRoundOutOfRange = errors.New("rates: redondeo fuera de rango (0-3 decimales)")
)
