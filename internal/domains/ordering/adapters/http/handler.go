// Package http exposes the ordering use cases over gin. Handlers stay thin:
// parse, delegate to the port, map errors to RFC 7807 problems.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-server/internal/domains/ordering/application"
	"github.com/Apurer/go-gin-order-server/internal/domains/ordering/domain"
	"github.com/Apurer/go-gin-order-server/internal/domains/ordering/ports"
	apierrors "github.com/Apurer/go-gin-order-server/internal/shared/errors"
)

// API wires HTTP transport with the ordering service.
type API struct {
	service   ports.Service
	responder *apierrors.ChainedResponder
}

// NewAPI creates an ordering API backed by the provided service.
func NewAPI(service ports.Service) API {
	return API{
		service:   service,
		responder: apierrors.NewChainedResponder("", mapOrderingError),
	}
}

// Post /add-to-cart?order_id=&product_id=&quantity=
// Reserve a quantity of a product onto an existing order.
func (api *API) AddToCart(c *gin.Context) {
	orderID, ok := api.queryInt64(c, "order_id")
	if !ok {
		return
	}
	productID, ok := api.queryInt64(c, "product_id")
	if !ok {
		return
	}
	quantity, ok := api.queryInt32(c, "quantity")
	if !ok {
		return
	}
	if err := api.service.AddProductToOrder(c.Request.Context(), orderID, productID, quantity); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "Success"})
}

type clientPayload struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address *string `json:"address"`
}

// Post /clients
func (api *API) CreateClient(c *gin.Context) {
	var payload clientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	client := domain.Client{Name: payload.Name, Email: payload.Email, Address: payload.Address}
	id, err := api.service.CreateClient(c.Request.Context(), &client)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type orderPayload struct {
	ClientID int64 `json:"client_id"`
}

// Post /orders
func (api *API) CreateOrder(c *gin.Context) {
	var payload orderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), payload.ClientID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderFromDomain(order))
}

// Get /orders/:id
func (api *API) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		api.responder.Respond(c, apierrors.ErrUnprocessable.WithDetail("order id must be an integer"))
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderFromDomain(order))
}

func (api *API) queryInt64(c *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		api.responder.Respond(c, apierrors.ErrUnprocessable.WithDetail(name+" must be an integer"))
		return 0, false
	}
	return value, true
}

func (api *API) queryInt32(c *gin.Context, name string) (int32, bool) {
	value, err := strconv.ParseInt(c.Query(name), 10, 32)
	if err != nil {
		api.responder.Respond(c, apierrors.ErrUnprocessable.WithDetail(name+" must be an integer"))
		return 0, false
	}
	return int32(value), true
}

type orderResponse struct {
	ID       int64               `json:"id"`
	ClientID int64               `json:"client_id"`
	Date     time.Time           `json:"date"`
	Items    []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	Quantity    int32   `json:"quantity"`
	PriceAtTime float64 `json:"price_at_time"`
}

func orderFromDomain(order *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
		})
	}
	return orderResponse{ID: order.ID, ClientID: order.ClientID, Date: order.Date, Items: items}
}

func mapOrderingError(err error) (apierrors.ProblemDetail, bool) {
	var notAvailable *domain.ProductNotAvailableError
	switch {
	case errors.As(err, &notAvailable):
		return apierrors.ErrBadRequest.
			WithDetail(notAvailable.Error()).
			WithExtension("available", notAvailable.Available), true
	case errors.Is(err, domain.ErrOrderNotFound):
		return apierrors.ErrNotFound.WithDetail("order not found"), true
	case errors.Is(err, domain.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail("product not found"), true
	case errors.Is(err, domain.ErrClientNotFound):
		return apierrors.ErrNotFound.WithDetail("client not found"), true
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
