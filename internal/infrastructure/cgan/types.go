package cgan

import "github.com/jeronimo114/comcer2/internal/domain/entity"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User struct {
		Token string `json:"token"`
	} `json:"user"`
	Message string `json:"message"`
}

// envelope forma común de las respuestas: {"body": ...}.
type envelope[T any] struct {
	Body    T      `json:"body"`
	Message string `json:"message"`
}

type batchSummary struct {
	Batch string     `json:"batch"`
	ID    entity.Ref `json:"id"`
}

// claves donde el resumen de despacho puede traer la ruta del Excel
var summaryURLKeys = []string{"url", "path", "file", "link", "filename"}
