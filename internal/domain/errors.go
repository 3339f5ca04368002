package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Las llamadas a servicios externos envuelven uno de estos con fmt.Errorf("...: %w") para que el
// llamador distinga "no existe" de "falló la red" de "respuesta ilegible" con errors.Is.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrTransport        = errors.New("fallo de comunicación con el servicio")
	ErrMalformedPayload = errors.New("respuesta con formato inesperado")
	ErrNoLoteSelected   = errors.New("no hay lote seleccionado")
	ErrInvalidStage     = errors.New("paso del flujo fuera de orden")
)

// IsRetryable indica si el error proviene de la red o del servidor remoto y el operador puede
// volver a consultar; not found y datos ilegibles no se arreglan reintentando.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrUnauthorized)
}
