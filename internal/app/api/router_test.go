package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	cataloghttp "github.com/Apurer/go-gin-order-server/internal/domains/catalog/adapters/http"
	catalogapp "github.com/Apurer/go-gin-order-server/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
	orderinghttp "github.com/Apurer/go-gin-order-server/internal/domains/ordering/adapters/http"
	orderingapp "github.com/Apurer/go-gin-order-server/internal/domains/ordering/application"
	orderingdomain "github.com/Apurer/go-gin-order-server/internal/domains/ordering/domain"
	reportinghttp "github.com/Apurer/go-gin-order-server/internal/domains/reporting/adapters/http"
	reportingapp "github.com/Apurer/go-gin-order-server/internal/domains/reporting/application"
	"github.com/Apurer/go-gin-order-server/internal/platform/memstore"
)

type routerFixture struct {
	router *gin.Engine
	store  *memstore.Store
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memstore.New(nil)
	handlers := Handlers{
		Catalog:   cataloghttp.NewAPI(catalogapp.NewService(store)),
		Ordering:  orderinghttp.NewAPI(orderingapp.NewService(store)),
		Reporting: reportinghttp.NewAPI(reportingapp.NewService(store), 30, 5),
	}
	return routerFixture{router: NewRouter(handlers), store: store}
}

func (f routerFixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func (f routerFixture) seedOrderWithProduct(t *testing.T, stock int32, price float64) (orderID, productID int64) {
	t.Helper()
	ctx := context.Background()
	categoryID, err := f.store.CreateCategory(ctx, &catalogdomain.Category{Title: "Electronics"})
	require.NoError(t, err)
	productID, err = f.store.CreateProduct(ctx, &catalogdomain.Product{
		Title: "SmartphoneX", Price: price, CategoryID: categoryID, Quantity: stock,
	})
	require.NoError(t, err)
	clientID, err := f.store.CreateClient(ctx, &orderingdomain.Client{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	order, err := f.store.CreateOrder(ctx, clientID)
	require.NoError(t, err)
	return order.ID, productID
}

func TestHealth(t *testing.T) {
	f := newRouterFixture(t)

	res := f.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{"status":"ok"}`, res.Body.String())
}

func TestAddToCart_Success(t *testing.T) {
	f := newRouterFixture(t)
	orderID, productID := f.seedOrderWithProduct(t, 10, 2.5)

	res := f.do(t, http.MethodPost,
		fmt.Sprintf("/add-to-cart?order_id=%d&product_id=%d&quantity=3", orderID, productID), "")
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{"data":"Success"}`, res.Body.String())
}

func TestAddToCart_UnknownOrderIs404(t *testing.T) {
	f := newRouterFixture(t)
	_, productID := f.seedOrderWithProduct(t, 10, 2.5)

	res := f.do(t, http.MethodPost,
		fmt.Sprintf("/add-to-cart?order_id=999&product_id=%d&quantity=1", productID), "")
	require.Equal(t, http.StatusNotFound, res.Code)
	require.Contains(t, res.Header().Get("Content-Type"), "application/problem+json")
}

func TestAddToCart_InsufficientStockIs400WithAvailable(t *testing.T) {
	f := newRouterFixture(t)
	orderID, productID := f.seedOrderWithProduct(t, 2, 2.5)

	res := f.do(t, http.MethodPost,
		fmt.Sprintf("/add-to-cart?order_id=%d&product_id=%d&quantity=5", orderID, productID), "")
	require.Equal(t, http.StatusBadRequest, res.Code)

	var problem struct {
		Extensions map[string]any `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &problem))
	require.EqualValues(t, 2, problem.Extensions["available"])
}

func TestAddToCart_GarbledParamsAre422(t *testing.T) {
	f := newRouterFixture(t)

	res := f.do(t, http.MethodPost, "/add-to-cart?order_id=abc&product_id=1&quantity=1", "")
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)

	res = f.do(t, http.MethodPost, "/add-to-cart?product_id=1&quantity=1", "")
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestAddToCart_NonPositiveQuantityIs422(t *testing.T) {
	f := newRouterFixture(t)
	orderID, productID := f.seedOrderWithProduct(t, 10, 2.5)

	res := f.do(t, http.MethodPost,
		fmt.Sprintf("/add-to-cart?order_id=%d&product_id=%d&quantity=0", orderID, productID), "")
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestCreateOrder_UnknownClientIs404(t *testing.T) {
	f := newRouterFixture(t)

	res := f.do(t, http.MethodPost, "/orders", `{"client_id": 42}`)
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestCategoriesAdminFlow(t *testing.T) {
	f := newRouterFixture(t)

	res := f.do(t, http.MethodPost, "/categories", `{"title": "Electronics"}`)
	require.Equal(t, http.StatusOK, res.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	res = f.do(t, http.MethodPost, "/categories",
		fmt.Sprintf(`{"title": "Phones", "parent_id": %d}`, created.ID))
	require.Equal(t, http.StatusOK, res.Code)

	res = f.do(t, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, res.Code)
	var categories []map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &categories))
	require.Len(t, categories, 2)

	// Patching onto an unknown parent is a soft no-op, not an error.
	res = f.do(t, http.MethodPatch, fmt.Sprintf("/categories/%d", created.ID), `{"parent_id": 999}`)
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{"data":"Not applied"}`, res.Body.String())
}

func TestReportsOverSeededStore(t *testing.T) {
	f := newRouterFixture(t)
	orderID, productID := f.seedOrderWithProduct(t, 10, 2.5)

	res := f.do(t, http.MethodPost,
		fmt.Sprintf("/add-to-cart?order_id=%d&product_id=%d&quantity=4", orderID, productID), "")
	require.Equal(t, http.StatusOK, res.Code)

	res = f.do(t, http.MethodGet, "/client-order-sum", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `[{"name":"Alice","total_sum":10}]`, res.Body.String())

	res = f.do(t, http.MethodGet, "/statistic-order", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t,
		`[{"product_name":"SmartphoneX","category_name":"Electronics","total_quantity":4}]`,
		res.Body.String())

	res = f.do(t, http.MethodGet, "/count-subcategories", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `[{"title":"Electronics","subcategories_count":0}]`, res.Body.String())
}
