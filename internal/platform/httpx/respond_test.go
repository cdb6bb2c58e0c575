package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONSetsContentType(t *testing.T) {
	res := httptest.NewRecorder()
	JSON(res, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, res.Code)
	assert.Equal(t, "application/json", res.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc"}`, res.Body.String())
}

func TestErrorBodyShape(t *testing.T) {
	res := httptest.NewRecorder()
	Error(res, http.StatusBadRequest, "Monto es inválido")

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.JSONEq(t, `{"error":"Monto es inválido"}`, res.Body.String())
}

func TestMethodNotAllowedEchoesMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/movements", nil)
	res := httptest.NewRecorder()
	MethodNotAllowed(res, req)

	assert.Equal(t, http.StatusMethodNotAllowed, res.Code)
	assert.JSONEq(t, `{"error":"Method DELETE Not Allowed"}`, res.Body.String())
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, "Unauthenticated"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"not found", ErrNotFound, http.StatusNotFound, "Not found"},
		{"validation carries message", ValidationError("Fecha es inválida"), http.StatusBadRequest, "Fecha es inválida"},
		{"wrapped not found", errors.Join(errors.New("ctx"), ErrNotFound), http.StatusNotFound, "Not found"},
		{"unknown errors stay opaque", errors.New("pq: relation missing"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := httptest.NewRecorder()
			RespondError(res, tt.err)
			assert.Equal(t, tt.status, res.Code)
			assert.JSONEq(t, `{"error":"`+tt.body+`"}`, res.Body.String())
		})
	}
}

func TestValidationMessage(t *testing.T) {
	assert.Equal(t, "Concepto es requerido", ValidationMessage(ValidationError("Concepto es requerido")))
	assert.Equal(t, "plain", ValidationMessage(errors.New("plain")))
}
