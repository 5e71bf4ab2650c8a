package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
)

type fakeCatalogRepo struct {
	categories   map[int64]domain.Category
	nextID       int64
	patchCalls   int
	lastPatch    domain.CategoryPatch
	lastPatchRow int64
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{categories: map[int64]domain.Category{}}
}

func (f *fakeCatalogRepo) CreateCategory(_ context.Context, category *domain.Category) (int64, error) {
	f.nextID++
	stored := *category
	stored.ID = f.nextID
	f.categories[stored.ID] = stored
	return stored.ID, nil
}

func (f *fakeCatalogRepo) ListCategories(_ context.Context) ([]domain.Category, error) {
	var list []domain.Category
	for _, c := range f.categories {
		list = append(list, c)
	}
	return list, nil
}

func (f *fakeCatalogRepo) PatchCategory(_ context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error) {
	f.patchCalls++
	f.lastPatch = patch
	f.lastPatchRow = id
	category, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		category.Title = *patch.Title
	}
	if patch.ParentID != nil {
		category.ParentID = patch.ParentID
	}
	f.categories[id] = category
	return &category, nil
}

func (f *fakeCatalogRepo) DeleteCategory(_ context.Context, id int64) (bool, error) {
	if _, ok := f.categories[id]; !ok {
		return false, nil
	}
	delete(f.categories, id)
	return true, nil
}

func (f *fakeCatalogRepo) CreateProduct(_ context.Context, _ *domain.Product) (int64, error) {
	return 1, nil
}

func TestCreateCategory_RejectsEmptyTitle(t *testing.T) {
	svc := NewService(newFakeCatalogRepo())

	_, err := svc.CreateCategory(context.Background(), "", nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestPatchCategory_EmptyPatchSkipsRepository(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewService(repo)

	empty := ""
	updated, err := svc.PatchCategory(context.Background(), 1, domain.CategoryPatch{Title: &empty})
	require.NoError(t, err)
	require.Nil(t, updated)
	require.Zero(t, repo.patchCalls)
}

func TestPatchCategory_FiltersNonPositiveParent(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewService(repo)
	id, err := repo.CreateCategory(context.Background(), &domain.Category{Title: "Books"})
	require.NoError(t, err)

	title := "Novels"
	zero := int64(0)
	updated, err := svc.PatchCategory(context.Background(), id, domain.CategoryPatch{Title: &title, ParentID: &zero})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "Novels", updated.Title)
	require.Equal(t, 1, repo.patchCalls)
	require.Nil(t, repo.lastPatch.ParentID)
}

func TestCreateProduct_RejectsNegativePrice(t *testing.T) {
	svc := NewService(newFakeCatalogRepo())

	_, err := svc.CreateProduct(context.Background(), &domain.Product{Title: "BookA", Price: -1, CategoryID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNegativePrice)
}
