package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttp "github.com/Apurer/go-gin-order-server/internal/domains/catalog/adapters/http"
	orderinghttp "github.com/Apurer/go-gin-order-server/internal/domains/ordering/adapters/http"
	reportinghttp "github.com/Apurer/go-gin-order-server/internal/domains/reporting/adapters/http"
)

// Handlers bundles the per-context HTTP APIs mounted on the router.
type Handlers struct {
	Catalog   cataloghttp.API
	Ordering  orderinghttp.API
	Reporting reportinghttp.API
}

// NewRouter mounts every route on a fresh gin engine.
func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/add-to-cart", handlers.Ordering.AddToCart)
	router.POST("/clients", handlers.Ordering.CreateClient)
	router.POST("/orders", handlers.Ordering.CreateOrder)
	router.GET("/orders/:id", handlers.Ordering.GetOrder)

	router.POST("/categories", handlers.Catalog.CreateCategory)
	router.GET("/categories", handlers.Catalog.ListCategories)
	router.PATCH("/categories/:id", handlers.Catalog.PatchCategory)
	router.DELETE("/categories/:id", handlers.Catalog.DeleteCategory)
	router.POST("/products", handlers.Catalog.CreateProduct)

	router.GET("/count-subcategories", handlers.Reporting.CountSubcategories)
	router.GET("/statistic-order", handlers.Reporting.TopSellingProducts)
	router.GET("/client-order-sum", handlers.Reporting.ClientOrderSums)

	return router
}
