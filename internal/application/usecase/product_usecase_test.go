package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

type fixture struct {
	uc    *ProductUseCase
	store *memStore
	tx    *memTx
	logs  *bytes.Buffer
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	tx := &memTx{store: store}
	logs := &bytes.Buffer{}
	f := &fixture{
		store: store,
		tx:    tx,
		logs:  logs,
		clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.uc = NewProductUseCase(store, tx, logger.New(logger.Config{Env: "test", Level: "debug", Output: logs}))
	// Cada llamada avanza un segundo: el orden de creación queda determinado.
	f.uc.now = func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	return f
}

func createReq(title string, images ...string) dto.CreateProductRequest {
	price := decimal.NewFromInt(10)
	return dto.CreateProductRequest{
		Title:  title,
		Price:  &price,
		Sizes:  []string{"M"},
		Gender: "men",
		Images: images,
	}
}

func ptr[T any](v T) *T { return &v }

func TestCreate_ShirtSeEncuentraPorTituloEnOtroCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, createReq("Shirt", "a.jpg", "b.jpg"))
	require.NoError(t, err)

	got, err := f.uc.FindOnePlain(ctx, "shirt")
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Shirt", got.Title)
	assert.Equal(t, "shirt", got.Slug)
	assert.True(t, decimal.NewFromInt(10).Equal(got.Price))
	assert.Equal(t, []string{"M"}, got.Sizes)
	assert.Equal(t, "men", got.Gender)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got.Images)
}

func TestCreate_FindOnePorIDTituloYSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := createReq("Men's Chill Crew Neck", "x.jpg")
	in.Tags = []string{"sweatshirt"}

	created, err := f.uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "mens-chill-crew-neck", created.Slug)

	persisted, err := f.uc.FindOnePlain(ctx, created.ID)
	require.NoError(t, err)

	for _, term := range []string{created.ID, "MEN'S CHILL CREW NECK", "men's chill crew neck", "Mens-Chill-Crew-Neck"} {
		got, err := f.uc.FindOnePlain(ctx, term)
		require.NoError(t, err, term)
		assert.Equal(t, persisted, got, term)
	}
}

func TestCreate_TitulosNoLatinosNoChocanPorSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.Create(ctx, createReq("Футболка"))
	require.NoError(t, err)
	assert.Equal(t, "футболка", first.Slug)

	second, err := f.uc.Create(ctx, createReq("Рубашка"))
	require.NoError(t, err)
	assert.Equal(t, "рубашка", second.Slug)

	got, err := f.uc.FindOnePlain(ctx, "ФУТБОЛКА")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestCreate_TitulosSoloSignosNoChocanPorSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.Create(ctx, createReq("!!!"))
	require.NoError(t, err)
	second, err := f.uc.Create(ctx, createReq("???"))
	require.NoError(t, err)

	assert.NotEmpty(t, first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)

	got, err := f.uc.FindOnePlain(ctx, first.Slug)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestCreate_DevuelveLasURLsRecibidas(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), createReq("Hoodie", "b.jpg", "a.jpg"))
	require.NoError(t, err)

	assert.Equal(t, []string{"b.jpg", "a.jpg"}, created.Images)
	assert.NotEmpty(t, uuid.MustParse(created.ID))
	assert.Equal(t, 1, f.tx.runs, "el alta es una sola transacción")
}

func TestCreate_SinImagenesDevuelveListaVacia(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), createReq("Cap"))
	require.NoError(t, err)

	assert.NotNil(t, created.Images)
	assert.Empty(t, created.Images)
	assert.Equal(t, []string{}, created.Tags)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	in := createReq("Shirt")
	in.Gender = "alien"

	_, err := f.uc.Create(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	assert.Zero(t, f.store.count())
}

func TestCreate_TituloDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Create(ctx, createReq("Shirt", "a.jpg"))
	require.NoError(t, err)

	dup := createReq("Shirt", "c.jpg")
	dup.Slug = "otra-camisa"
	_, err = f.uc.Create(ctx, dup)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Key (title)=(Shirt) already exists.", de.Message)
	assert.Equal(t, 1, f.store.count(), "no debe quedar fila parcial")
}

func TestCreate_SlugDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Create(ctx, createReq("Shirt"))
	require.NoError(t, err)

	dup := createReq("Camisa")
	dup.Slug = "SHIRT"
	_, err = f.uc.Create(ctx, dup)

	assert.Equal(t, domain.KindDuplicateKey, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Key (slug)=(shirt)")
	assert.Equal(t, 1, f.store.count())
}

func TestFindOne_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Create(ctx, createReq("Shirt"))
	require.NoError(t, err)

	for _, term := range []string{"pants", uuid.NewString(), "shirt-"} {
		_, err := f.uc.FindOne(ctx, term)
		require.Error(t, err, term)
		assert.True(t, errors.Is(err, domain.ErrNotFound), term)
		assert.Contains(t, err.Error(), term)
	}
}

func TestList_DefaultsYOffset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		_, err := f.uc.Create(ctx, createReq(fmt.Sprintf("Producto %02d", i), "img.jpg"))
		require.NoError(t, err)
	}

	first, err := f.uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, "Producto 00", first[0].Title)
	assert.Equal(t, []string{"img.jpg"}, first[0].Images)

	rest, err := f.uc.List(ctx, dto.PageRequest{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Len(t, rest, 2)

	all, err := f.uc.List(ctx, dto.PageRequest{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, all, 12)
}

func TestUpdate_ReemplazaImagenesEnOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, createReq("Shirt", "a.jpg", "b.jpg"))
	require.NoError(t, err)
	old, err := f.uc.FindOne(ctx, created.ID)
	require.NoError(t, err)

	got, err := f.uc.Update(ctx, created.ID, dto.UpdateProductRequest{Images: &[]string{"d.jpg", "c.jpg", "e.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"d.jpg", "c.jpg", "e.jpg"}, got.Images)

	reloaded, err := f.uc.FindOne(ctx, created.ID)
	require.NoError(t, err)
	for _, img := range old.Images {
		assert.False(t, hasImage(reloaded.Images, img.ID), "la imagen %d debía borrarse", img.ID)
	}
}

func TestUpdate_ListaVaciaBorraImagenes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, createReq("Shirt", "a.jpg"))
	require.NoError(t, err)

	got, err := f.uc.Update(ctx, created.ID, dto.UpdateProductRequest{Images: &[]string{}})
	require.NoError(t, err)

	assert.Empty(t, got.Images)
}

func TestUpdate_VacioNoCambiaNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, createReq("Shirt", "a.jpg", "b.jpg"))
	require.NoError(t, err)
	before, err := f.uc.FindOnePlain(ctx, created.ID)
	require.NoError(t, err)

	after, err := f.uc.Update(ctx, created.ID, dto.UpdateProductRequest{})
	require.NoError(t, err)

	after.UpdatedAt = before.UpdatedAt
	assert.Equal(t, before, after)
}

func TestUpdate_ParcialSoloCamposPresentes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, createReq("Shirt", "a.jpg"))
	require.NoError(t, err)

	got, err := f.uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Title:  ptr("Shirt Pro"),
		Stock:  ptr(7),
		Gender: ptr("unisex"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Shirt Pro", got.Title)
	assert.Equal(t, "shirt", got.Slug, "el slug no se recalcula si no viene")
	assert.Equal(t, 7, got.Stock)
	assert.Equal(t, "unisex", got.Gender)
	assert.Equal(t, []string{"a.jpg"}, got.Images)
}

func TestUpdate_NormalizaSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, createReq("Shirt"))
	require.NoError(t, err)

	got, err := f.uc.Update(ctx, created.ID, dto.UpdateProductRequest{Slug: ptr("Camisa Básica")})
	require.NoError(t, err)

	assert.Equal(t, "camisa-basica", got.Slug)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{uuid.NewString(), "no-es-uuid"} {
		_, err := f.uc.Update(context.Background(), id, dto.UpdateProductRequest{Title: ptr("x")})
		require.Error(t, err, id)
		assert.True(t, errors.Is(err, domain.ErrNotFound), id)
		assert.Contains(t, err.Error(), id)
	}
	assert.Zero(t, f.tx.runs)
}

func TestUpdate_FalloDentroDeLaTxConservaImagenes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, createReq("Shirt", "a.jpg", "b.jpg"))
	require.NoError(t, err)

	f.tx.wrap = func(r repository.ProductRepository) repository.ProductRepository {
		return failingSave{ProductRepository: r, err: errors.New("conexión perdida")}
	}
	_, err = f.uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Title:  ptr("Shirt v2"),
		Images: &[]string{"c.jpg"},
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	assert.Equal(t, "error inesperado, revise los logs del servidor", err.Error())
	assert.Contains(t, f.logs.String(), "conexión perdida", "el error completo queda en el log")

	f.tx.wrap = nil
	got, err := f.uc.FindOnePlain(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", got.Title)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got.Images)
}

func TestUpdate_TituloDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Create(ctx, createReq("Shirt"))
	require.NoError(t, err)
	pants, err := f.uc.Create(ctx, createReq("Pants", "p.jpg"))
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, pants.ID, dto.UpdateProductRequest{Title: ptr("Shirt"), Images: &[]string{}})

	assert.Equal(t, domain.KindDuplicateKey, domain.KindOf(err))
	got, err := f.uc.FindOnePlain(ctx, pants.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pants", got.Title)
	assert.Equal(t, []string{"p.jpg"}, got.Images, "rollback: las imágenes siguen")
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, createReq("Shirt", "a.jpg"))
	require.NoError(t, err)

	assert.NoError(t, f.uc.Remove(ctx, uuid.NewString()), "id inexistente es un no-op")
	assert.NoError(t, f.uc.Remove(ctx, "no-es-uuid"))
	assert.Equal(t, 1, f.store.count())

	require.NoError(t, f.uc.Remove(ctx, created.ID))

	_, err = f.uc.FindOne(ctx, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.uc.FindOne(ctx, "shirt")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Zero(t, f.store.count(), "las imágenes se van con el producto")
}

func TestDeleteAllProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, title := range []string{"A", "B", "C"} {
		_, err := f.uc.Create(ctx, createReq(title, title+".jpg"))
		require.NoError(t, err)
	}

	require.NoError(t, f.uc.DeleteAllProducts(ctx))

	list, err := f.uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHandleDBError_InternoOcultaDetalle(t *testing.T) {
	f := newFixture(t)
	f.store.err = errors.New("pq: relation \"products\" does not exist")

	_, err := f.uc.List(context.Background(), dto.PageRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInternal))
	assert.NotContains(t, err.Error(), "relation")
	assert.Contains(t, f.logs.String(), "relation")
}

func TestHandleDBError_ViolacionEnvuelta(t *testing.T) {
	f := newFixture(t)
	wrapped := fmt.Errorf("insert product: %w", &domain.UniqueViolationError{Detail: "Key (slug)=(x) already exists."})

	err := f.uc.handleDBError(wrapped)

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindDuplicateKey, de.Kind)
	assert.Equal(t, "Key (slug)=(x) already exists.", de.Message)
}
