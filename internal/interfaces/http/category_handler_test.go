package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stocktrack-api/internal/application/dto"
)

// Caso 1: crear una categoría responde 201 con el recurso completo.
func TestCategoriasHTTP_Crear(t *testing.T) {
	app := buildTestApp(newMockDB())

	resp := doJSON(t, app, http.MethodPost, "/api/categories", dto.CreateCategoryRequest{
		Name:        "Bebidas",
		Description: "Gaseosas y jugos",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.CategoryResponse
	decodeBody(t, resp, &out)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Bebidas", out.Name)
	assert.Equal(t, "Gaseosas y jugos", out.Description)
	assert.Zero(t, out.ProductCount)
}

// Caso 2: un nombre ya usado responde 409 DUPLICATE.
func TestCategoriasHTTP_CrearDuplicada(t *testing.T) {
	db := newMockDB()
	db.seedCategory("c1", "Bebidas")
	app := buildTestApp(db)

	resp := doJSON(t, app, http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "Bebidas"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decodeError(t, resp).Code)
}

// Caso 3: JSON malformado responde 400 con el mensaje de parseo.
func TestCategoriasHTTP_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(newMockDB())

	resp := doRaw(t, app, http.MethodPost, "/api/categories", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	e := decodeError(t, resp)
	assert.Equal(t, "INVALID_INPUT", e.Code)
	assert.Equal(t, "cuerpo inválido", e.Message)
}

// Caso 4: el listado viene ordenado por nombre y con el conteo de productos.
func TestCategoriasHTTP_ListaConConteos(t *testing.T) {
	db := newMockDB()
	db.seedCategory("c1", "Lácteos")
	db.seedCategory("c2", "Bebidas")
	db.seedProduct("p1", "Leche entera", "c1", 10, 10, "1.50")
	db.seedProduct("p2", "Yogur", "c1", 5, 10, "2.00")
	app := buildTestApp(db)

	resp := doJSON(t, app, http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.CategoryListResponse
	decodeBody(t, resp, &out)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Bebidas", out.Items[0].Name)
	assert.Zero(t, out.Items[0].ProductCount)
	assert.Equal(t, "Lácteos", out.Items[1].Name)
	assert.EqualValues(t, 2, out.Items[1].ProductCount)
}

// Caso 5: pedir una categoría inexistente responde 404 NOT_FOUND.
func TestCategoriasHTTP_ObtenerInexistente(t *testing.T) {
	app := buildTestApp(newMockDB())

	resp := doJSON(t, app, http.MethodGet, "/api/categories/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

// Caso 6: actualizar cambia solo los campos enviados.
func TestCategoriasHTTP_Actualizar(t *testing.T) {
	db := newMockDB()
	db.seedCategory("c1", "Bebidas")
	app := buildTestApp(db)

	name := "Bebidas frías"
	resp := doJSON(t, app, http.MethodPut, "/api/categories/c1", dto.UpdateCategoryRequest{Name: &name})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.CategoryResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "Bebidas frías", out.Name)
	assert.Equal(t, "Bebidas frías", db.categories["c1"].Name)
}

// Caso 7: eliminar una categoría con productos responde 409 CATEGORY_IN_USE.
func TestCategoriasHTTP_EliminarConProductos(t *testing.T) {
	db := newMockDB()
	db.seedCategory("c1", "Bebidas")
	db.seedProduct("p1", "Agua mineral", "c1", 30, 10, "0.80")
	app := buildTestApp(db)

	resp := doJSON(t, app, http.MethodDelete, "/api/categories/c1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CATEGORY_IN_USE", decodeError(t, resp).Code)
	assert.Contains(t, db.categories, "c1", "la categoría no debe borrarse")
}

// Caso 8: eliminar una categoría vacía responde 204 y la quita de la base.
func TestCategoriasHTTP_EliminarVacia(t *testing.T) {
	db := newMockDB()
	db.seedCategory("c1", "Bebidas")
	app := buildTestApp(db)

	resp := doJSON(t, app, http.MethodDelete, "/api/categories/c1", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotContains(t, db.categories, "c1")
}
