package usecase_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/application/usecase"
	"github.com/invorya/stocktrack-api/internal/domain"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

// catalogStore guarda categorías, productos y movimientos en memoria. Las
// transacciones se simulan por copia: ver fakeTxRunner en
// product_usecase_test.go.
type catalogStore struct {
	categories map[string]*entity.Category
	products   map[string]*entity.Product
	movements  []*entity.StockMovement

	// Fallas inyectables para probar atomicidad
	failMovementCreate error
	failUpdateQuantity error
	failProductDelete  error
}

func newCatalogStore() *catalogStore {
	return &catalogStore{
		categories: map[string]*entity.Category{},
		products:   map[string]*entity.Product{},
	}
}

func (s *catalogStore) addCategory(id, name string) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.categories[id] = &entity.Category{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
}

func (s *catalogStore) addProduct(p *entity.Product) {
	cp := *p
	s.products[p.ID] = &cp
}

func (s *catalogStore) clone() *catalogStore {
	c := &catalogStore{
		categories:         make(map[string]*entity.Category, len(s.categories)),
		products:           make(map[string]*entity.Product, len(s.products)),
		movements:          make([]*entity.StockMovement, 0, len(s.movements)),
		failMovementCreate: s.failMovementCreate,
		failUpdateQuantity: s.failUpdateQuantity,
		failProductDelete:  s.failProductDelete,
	}
	for id, cat := range s.categories {
		cp := *cat
		c.categories[id] = &cp
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for _, m := range s.movements {
		cm := *m
		c.movements = append(c.movements, &cm)
	}
	return c
}

// sampleProduct producto base para los casos (umbral 10, precio 4.75).
func sampleProduct(id, name, categoryID string, quantity int64) *entity.Product {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &entity.Product{
		ID:         id,
		Name:       name,
		CategoryID: categoryID,
		Quantity:   quantity,
		Threshold:  10,
		UnitPrice:  decimal.RequireFromString("4.75"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// fakeCategoryRepo implementa repository.CategoryRepository sobre catalogStore.
type fakeCategoryRepo struct{ s *catalogStore }

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range r.s.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]repository.CategoryWithCount, error) {
	out := make([]repository.CategoryWithCount, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		var count int64
		for _, p := range r.s.products {
			if p.CategoryID == c.ID {
				count++
			}
		}
		out = append(out, repository.CategoryWithCount{Category: *c, ProductCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category.Name < out[j].Category.Name })
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.s.categories, id)
	return nil
}

// fakeProductRepo implementa repository.ProductRepository sobre catalogStore.
type fakeProductRepo struct{ s *catalogStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range r.s.products {
		if p.Barcode != "" && existing.Barcode == p.Barcode {
			return domain.ErrDuplicate
		}
	}
	r.s.addProduct(p)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) matches(p *entity.Product, filter repository.ProductFilter) bool {
	if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Barcode), needle) {
			return false
		}
	}
	return true
}

func (r *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if r.matches(p, filter) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeProductRepo) Count(_ context.Context, filter repository.ProductFilter) (int64, error) {
	var n int64
	for _, p := range r.s.products {
		if r.matches(p, filter) {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	existing, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.Quantity = existing.Quantity
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(_ context.Context, id string, quantity int64, updatedAt time.Time) error {
	if r.s.failUpdateQuantity != nil {
		return r.s.failUpdateQuantity
	}
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if r.s.failProductDelete != nil {
		return r.s.failProductDelete
	}
	delete(r.s.products, id)
	return nil
}

func newCategoryUseCase(s *catalogStore) *usecase.CategoryUseCase {
	return usecase.NewCategoryUseCase(&fakeCategoryRepo{s: s}, &fakeProductRepo{s: s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CategoryUseCase
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: crear recorta espacios y persiste la categoría.
func TestCategoryCreate_RecortaYGuarda(t *testing.T) {
	store := newCatalogStore()
	uc := newCategoryUseCase(store)

	out, err := uc.Create(context.Background(), dto.CreateCategoryRequest{
		Name:        "  Bebidas  ",
		Description: " refrescos y jugos ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Bebidas", out.Name, "el nombre se guarda sin espacios laterales")
	assert.Equal(t, "refrescos y jugos", out.Description)
	assert.Zero(t, out.ProductCount)
	require.Len(t, store.categories, 1)
	assert.Equal(t, "Bebidas", store.categories[out.ID].Name)
}

// Caso 2: nombre vacío (o solo espacios) se rechaza.
func TestCategoryCreate_NombreVacio(t *testing.T) {
	store := newCatalogStore()
	uc := newCategoryUseCase(store)

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.categories)
}

// Caso 3: el nombre es único, incluso con espacios alrededor.
func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	store := newCatalogStore()
	store.addCategory("c1", "Bebidas")
	uc := newCategoryUseCase(store)

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: " Bebidas "})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, store.categories, 1)
}

// Caso 4: GetByID incluye el conteo de productos de la categoría.
func TestCategoryGetByID_TraeConteoDeProductos(t *testing.T) {
	store := newCatalogStore()
	store.addCategory("c1", "Bebidas")
	store.addCategory("c2", "Lácteos")
	store.addProduct(sampleProduct("p1", "Agua sin gas", "c1", 5))
	store.addProduct(sampleProduct("p2", "Jugo de mango", "c1", 3))
	store.addProduct(sampleProduct("p3", "Leche entera", "c2", 9))
	uc := newCategoryUseCase(store)

	out, err := uc.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", out.Name)
	assert.Equal(t, int64(2), out.ProductCount, "solo cuenta productos de la categoría")
}

// Caso 5: categoría inexistente → ErrNotFound.
func TestCategoryGetByID_NoEncontrada(t *testing.T) {
	uc := newCategoryUseCase(newCatalogStore())

	_, err := uc.GetByID(context.Background(), "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Caso 6: el listado sale en orden alfabético con los conteos.
func TestCategoryList_OrdenAlfabeticoConConteos(t *testing.T) {
	store := newCatalogStore()
	store.addCategory("c2", "Lácteos")
	store.addCategory("c1", "Bebidas")
	store.addProduct(sampleProduct("p1", "Agua sin gas", "c1", 5))
	uc := newCategoryUseCase(store)

	out, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Bebidas", out.Items[0].Name)
	assert.Equal(t, int64(1), out.Items[0].ProductCount)
	assert.Equal(t, "Lácteos", out.Items[1].Name)
	assert.Zero(t, out.Items[1].ProductCount)
}

// Caso 7: actualizar cambia nombre y descripción recortados.
func TestCategoryUpdate_NombreYDescripcion(t *testing.T) {
	store := newCatalogStore()
	store.addCategory("c1", "Bebidas")
	uc := newCategoryUseCase(store)

	name := "Bebidas frías"
	desc := " con hielo "
	out, err := uc.Update(context.Background(), "c1", dto.UpdateCategoryRequest{Name: &name, Description: &desc})
	require.NoError(t, err)

	assert.Equal(t, "Bebidas frías", out.Name)
	assert.Equal(t, "con hielo", out.Description)
	assert.True(t, out.UpdatedAt.After(out.CreatedAt))
	assert.Equal(t, "Bebidas frías", store.categories["c1"].Name)
}

// Caso 8: renombrar a un nombre ajeno es conflicto; al propio no.
func TestCategoryUpdate_NombreDuplicadoRechazado(t *testing.T) {
	store := newCatalogStore()
	store.addCategory("c1", "Bebidas")
	store.addCategory("c2", "Lácteos")
	uc := newCategoryUseCase(store)

	name := "Bebidas"
	_, err := uc.Update(context.Background(), "c2", dto.UpdateCategoryRequest{Name: &name})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "Lácteos", store.categories["c2"].Name, "el conflicto no debe modificar nada")

	out, err := uc.Update(context.Background(), "c1", dto.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err, "conservar el propio nombre no es conflicto")
	assert.Equal(t, "Bebidas", out.Name)
}

// Caso 9: actualizaciones inválidas.
func TestCategoryUpdate_EntradasInvalidas(t *testing.T) {
	store := newCatalogStore()
	store.addCategory("c1", "Bebidas")
	uc := newCategoryUseCase(store)

	t.Run("nombre vacío", func(t *testing.T) {
		name := "   "
		_, err := uc.Update(context.Background(), "c1", dto.UpdateCategoryRequest{Name: &name})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("categoría inexistente", func(t *testing.T) {
		name := "Otra"
		_, err := uc.Update(context.Background(), "no-existe", dto.UpdateCategoryRequest{Name: &name})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// Caso 10: una categoría con productos no se puede borrar.
func TestCategoryDelete_BloqueadoConProductos(t *testing.T) {
	store := newCatalogStore()
	store.addCategory("c1", "Bebidas")
	store.addProduct(sampleProduct("p1", "Agua sin gas", "c1", 5))
	uc := newCategoryUseCase(store)

	err := uc.Delete(context.Background(), "c1")
	require.ErrorIs(t, err, domain.ErrCategoryInUse)
	assert.Contains(t, store.categories, "c1", "la categoría debe seguir existiendo")
}

// Caso 11: una categoría vacía se borra; repetir el borrado → ErrNotFound.
func TestCategoryDelete_VaciaEliminada(t *testing.T) {
	store := newCatalogStore()
	store.addCategory("c1", "Bebidas")
	uc := newCategoryUseCase(store)

	err := uc.Delete(context.Background(), "c1")
	require.NoError(t, err)
	assert.NotContains(t, store.categories, "c1")

	err = uc.Delete(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
