// Package http serves the statistics reports over gin.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-server/internal/domains/reporting/ports"
	apierrors "github.com/Apurer/go-gin-order-server/internal/shared/errors"
)

// API wires HTTP transport with the reporting service. WindowDays and
// TopLimit are the configured defaults for the top-selling report.
type API struct {
	service   ports.Service
	responder *apierrors.Responder

	windowDays int
	topLimit   int
}

// NewAPI creates a reporting API backed by the provided service.
func NewAPI(service ports.Service, windowDays, topLimit int) API {
	return API{
		service:    service,
		responder:  apierrors.NewResponder(""),
		windowDays: windowDays,
		topLimit:   topLimit,
	}
}

type subcategoryCountResponse struct {
	Title              string `json:"title"`
	SubcategoriesCount int64  `json:"subcategories_count"`
}

// Get /count-subcategories
func (api *API) CountSubcategories(c *gin.Context) {
	counts, err := api.service.CountImmediateSubcategories(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	response := make([]subcategoryCountResponse, 0, len(counts))
	for _, count := range counts {
		response = append(response, subcategoryCountResponse{
			Title:              count.Title,
			SubcategoriesCount: count.SubcategoriesCount,
		})
	}
	c.JSON(http.StatusOK, response)
}

type topProductResponse struct {
	ProductName   string `json:"product_name"`
	CategoryName  string `json:"category_name"`
	TotalQuantity int64  `json:"total_quantity"`
}

// Get /statistic-order
func (api *API) TopSellingProducts(c *gin.Context) {
	products, err := api.service.TopSellingProducts(c.Request.Context(), api.windowDays, api.topLimit)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	response := make([]topProductResponse, 0, len(products))
	for _, product := range products {
		response = append(response, topProductResponse{
			ProductName:   product.ProductName,
			CategoryName:  product.CategoryName,
			TotalQuantity: product.TotalQuantity,
		})
	}
	c.JSON(http.StatusOK, response)
}

type clientOrderSumResponse struct {
	Name     string  `json:"name"`
	TotalSum float64 `json:"total_sum"`
}

// Get /client-order-sum
func (api *API) ClientOrderSums(c *gin.Context) {
	sums, err := api.service.ClientOrderTotals(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	response := make([]clientOrderSumResponse, 0, len(sums))
	for _, sum := range sums {
		response = append(response, clientOrderSumResponse{Name: sum.Name, TotalSum: sum.TotalSum})
	}
	c.JSON(http.StatusOK, response)
}
