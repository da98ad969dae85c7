package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El middleware de swagger hace os.Stat del archivo al arrancar y entra en pánico
// si falta. Este test garantiza que el documento viaja con el repo y es JSON válido.
func TestSwaggerJSON_ExisteYEsValido(t *testing.T) {
	path := filepath.Join("..", "..", "docs", "swagger.json")

	raw, err := os.ReadFile(path)
	require.NoError(t, err, "docs/swagger.json debe existir: el servidor no arranca sin él")

	var doc struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc), "docs/swagger.json debe ser JSON válido")
	assert.Equal(t, "2.0", doc.Swagger)

	// Las rutas principales del API deben estar documentadas.
	for _, route := range []string{
		"/health",
		"/api/auth/login",
		"/api/stock/movements",
		"/api/stock/movements/{id}",
		"/api/stock/alerts/{id}/resolve",
	} {
		assert.Contains(t, doc.Paths, route, "ruta %s sin documentar", route)
	}
}
