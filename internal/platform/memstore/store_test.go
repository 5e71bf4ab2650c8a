package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
	orderingdomain "github.com/Apurer/go-gin-order-server/internal/domains/ordering/domain"
)

func ptr(v int64) *int64 { return &v }

func TestCreateCategory_UnknownParentIsSoftNoOp(t *testing.T) {
	store := New(nil)

	id, err := store.CreateCategory(context.Background(), &catalogdomain.Category{Title: "Orphan", ParentID: ptr(99)})
	require.NoError(t, err)
	require.Zero(t, id)

	categories, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	require.Empty(t, categories)
}

func TestDeleteCategory_SetsChildrenParentNull(t *testing.T) {
	ctx := context.Background()
	store := New(nil)

	rootID, err := store.CreateCategory(ctx, &catalogdomain.Category{Title: "Electronics"})
	require.NoError(t, err)
	childID, err := store.CreateCategory(ctx, &catalogdomain.Category{Title: "Laptops", ParentID: ptr(rootID)})
	require.NoError(t, err)

	deleted, err := store.DeleteCategory(ctx, rootID)
	require.NoError(t, err)
	require.True(t, deleted)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Equal(t, childID, categories[0].ID)
	require.Nil(t, categories[0].ParentID)
}

func TestDeleteCategory_RestrictedByProducts(t *testing.T) {
	ctx := context.Background()
	store := New(nil)

	categoryID, err := store.CreateCategory(ctx, &catalogdomain.Category{Title: "Books"})
	require.NoError(t, err)
	_, err = store.CreateProduct(ctx, &catalogdomain.Product{Title: "BookA", Price: 1, CategoryID: categoryID, Quantity: 1})
	require.NoError(t, err)

	deleted, err := store.DeleteCategory(ctx, categoryID)
	require.NoError(t, err)
	require.False(t, deleted)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
}

func TestPatchCategory_UnknownParentIsSoftNoOp(t *testing.T) {
	ctx := context.Background()
	store := New(nil)

	id, err := store.CreateCategory(ctx, &catalogdomain.Category{Title: "Books"})
	require.NoError(t, err)

	title := "Novels"
	updated, err := store.PatchCategory(ctx, id, catalogdomain.CategoryPatch{Title: &title, ParentID: ptr(42)})
	require.NoError(t, err)
	require.Nil(t, updated)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, "Books", categories[0].Title)
}

func TestPatchCategory_AppliesTitleAndParent(t *testing.T) {
	ctx := context.Background()
	store := New(nil)

	rootID, err := store.CreateCategory(ctx, &catalogdomain.Category{Title: "Electronics"})
	require.NoError(t, err)
	childID, err := store.CreateCategory(ctx, &catalogdomain.Category{Title: "Phones"})
	require.NoError(t, err)

	title := "Smartphones"
	updated, err := store.PatchCategory(ctx, childID, catalogdomain.CategoryPatch{Title: &title, ParentID: ptr(rootID)})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "Smartphones", updated.Title)
	require.NotNil(t, updated.ParentID)
	require.Equal(t, rootID, *updated.ParentID)
}

func TestCreateProduct_UnknownCategoryIsSoftNoOp(t *testing.T) {
	store := New(nil)

	id, err := store.CreateProduct(context.Background(), &catalogdomain.Product{Title: "Ghost", Price: 1, CategoryID: 7})
	require.NoError(t, err)
	require.Zero(t, id)
}

func TestAddProductToOrder_PriceCapturedOnFirstAddition(t *testing.T) {
	ctx := context.Background()
	store := New(nil)

	categoryID, err := store.CreateCategory(ctx, &catalogdomain.Category{Title: "Books"})
	require.NoError(t, err)
	productID, err := store.CreateProduct(ctx, &catalogdomain.Product{Title: "BookA", Price: 5, CategoryID: categoryID, Quantity: 10})
	require.NoError(t, err)
	clientID, err := store.CreateClient(ctx, &orderingdomain.Client{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	order, err := store.CreateOrder(ctx, clientID)
	require.NoError(t, err)

	reservation, err := orderingdomain.NewReservation(order.ID, productID, 1)
	require.NoError(t, err)
	require.NoError(t, store.AddProductToOrder(ctx, reservation))

	// Reprice the product between additions. The line keeps the price it was
	// sold at, not the current one.
	store.mu.Lock()
	product := store.products[productID]
	product.Price = 9.5
	store.products[productID] = product
	store.mu.Unlock()

	require.NoError(t, store.AddProductToOrder(ctx, reservation))

	got, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, int32(2), got.Items[0].Quantity)
	require.Equal(t, 5.0, got.Items[0].PriceAtTime)
}
