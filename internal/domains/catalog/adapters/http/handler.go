// Package http exposes catalog administration over gin. Constraint-violating
// writes surface as "Not applied" rather than errors, matching the soft no-op
// policy of the persistence layer.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-server/internal/domains/catalog/application"
	"github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-order-server/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/go-gin-order-server/internal/shared/errors"
)

// API wires HTTP transport with the catalog service.
type API struct {
	service   ports.Service
	responder *apierrors.ChainedResponder
}

// NewAPI creates a catalog API backed by the provided service.
func NewAPI(service ports.Service) API {
	return API{
		service:   service,
		responder: apierrors.NewChainedResponder("", mapCatalogError),
	}
}

type categoryPayload struct {
	Title    string `json:"title"`
	ParentID *int64 `json:"parent_id"`
}

// Post /categories
func (api *API) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	id, err := api.service.CreateCategory(c.Request.Context(), payload.Title, payload.ParentID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if id == 0 {
		c.JSON(http.StatusOK, gin.H{"data": "Not applied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Get /categories
func (api *API) ListCategories(c *gin.Context) {
	categories, err := api.service.ListCategories(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, categoryFromDomain(category))
	}
	c.JSON(http.StatusOK, response)
}

// Patch /categories/:id
func (api *API) PatchCategory(c *gin.Context) {
	id, ok := api.pathID(c)
	if !ok {
		return
	}
	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	patch := domain.CategoryPatch{ParentID: payload.ParentID}
	if payload.Title != "" {
		patch.Title = &payload.Title
	}
	updated, err := api.service.PatchCategory(c.Request.Context(), id, patch)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusOK, gin.H{"data": "Not applied"})
		return
	}
	c.JSON(http.StatusOK, categoryFromDomain(*updated))
}

// Delete /categories/:id
func (api *API) DeleteCategory(c *gin.Context) {
	id, ok := api.pathID(c)
	if !ok {
		return
	}
	deleted, err := api.service.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusOK, gin.H{"data": "Not applied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "Success"})
}

type productPayload struct {
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	CategoryID int64   `json:"category_id"`
	Quantity   int32   `json:"quantity"`
}

// Post /products
func (api *API) CreateProduct(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	product := domain.Product{
		Title:      payload.Title,
		Price:      payload.Price,
		CategoryID: payload.CategoryID,
		Quantity:   payload.Quantity,
	}
	id, err := api.service.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if id == 0 {
		c.JSON(http.StatusOK, gin.H{"data": "Not applied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (api *API) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		api.responder.Respond(c, apierrors.ErrUnprocessable.WithDetail("category id must be an integer"))
		return 0, false
	}
	return id, true
}

type categoryResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ParentID *int64 `json:"parent_id"`
}

func categoryFromDomain(category domain.Category) categoryResponse {
	return categoryResponse{ID: category.ID, Title: category.Title, ParentID: category.ParentID}
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, application.ErrInvalidInput) {
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
