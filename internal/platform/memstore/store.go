// Package memstore is a process-local implementation of the persistence
// ports. The five entity sets are relationally coupled (the reservation
// transaction spans orders, products, and items), so one store guards them
// behind a single mutex instead of per-domain repositories. It backs the
// DSN-less fallback mode and the non-container tests.
package memstore

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	catalogdomain "github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-order-server/internal/domains/catalog/ports"
	orderingdomain "github.com/Apurer/go-gin-order-server/internal/domains/ordering/domain"
	orderingports "github.com/Apurer/go-gin-order-server/internal/domains/ordering/ports"
	reportingdomain "github.com/Apurer/go-gin-order-server/internal/domains/reporting/domain"
	reportingports "github.com/Apurer/go-gin-order-server/internal/domains/reporting/ports"
)

var (
	_ catalogports.Repository   = (*Store)(nil)
	_ orderingports.Repository  = (*Store)(nil)
	_ reportingports.Repository = (*Store)(nil)
)

// Store holds all entities behind one mutex. The mutex is the in-process
// analogue of the row locks: a reservation holds it for the whole
// check-decrement-upsert sequence, so stock decisions never race.
type Store struct {
	mu     sync.Mutex
	logger *slog.Logger

	categories map[int64]catalogdomain.Category
	products   map[int64]catalogdomain.Product
	clients    map[int64]orderingdomain.Client
	orders     map[int64]orderingdomain.Order
	items      map[int64]orderingdomain.OrderItem

	nextCategoryID int64
	nextProductID  int64
	nextClientID   int64
	nextOrderID    int64
	nextItemID     int64
}

// New creates an empty store. The logger is used for the soft-failure
// warnings of administrative writes; nil disables them.
func New(logger *slog.Logger) *Store {
	return &Store{
		logger:     logger,
		categories: map[int64]catalogdomain.Category{},
		products:   map[int64]catalogdomain.Product{},
		clients:    map[int64]orderingdomain.Client{},
		orders:     map[int64]orderingdomain.Order{},
		items:      map[int64]orderingdomain.OrderItem{},
	}
}

// --- catalog ---

func (s *Store) CreateCategory(_ context.Context, category *catalogdomain.Category) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category.ParentID != nil {
		if _, ok := s.categories[*category.ParentID]; !ok {
			s.warn("category insert violated a constraint", slog.String("title", category.Title))
			return 0, nil
		}
	}
	s.nextCategoryID++
	stored := catalogdomain.Category{
		ID:       s.nextCategoryID,
		Title:    category.Title,
		ParentID: cloneInt64Ptr(category.ParentID),
	}
	s.categories[stored.ID] = stored
	return stored.ID, nil
}

func (s *Store) ListCategories(_ context.Context) ([]catalogdomain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoriesByID(), nil
}

func (s *Store) PatchCategory(_ context.Context, id int64, patch catalogdomain.CategoryPatch) (*catalogdomain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	if patch.ParentID != nil {
		if _, ok := s.categories[*patch.ParentID]; !ok {
			s.warn("category patch violated a constraint", slog.Int64("category.id", id))
			return nil, nil
		}
		category.ParentID = cloneInt64Ptr(patch.ParentID)
	}
	if patch.Title != nil {
		category.Title = *patch.Title
	}
	s.categories[id] = category
	result := category
	result.ParentID = cloneInt64Ptr(category.ParentID)
	return &result, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	for _, product := range s.products {
		if product.CategoryID == id {
			// RESTRICT: a category with products cannot be deleted.
			s.warn("category delete violated a constraint", slog.Int64("category.id", id))
			return false, nil
		}
	}
	delete(s.categories, id)
	// SET NULL on the children, same as the relational schema.
	for childID, child := range s.categories {
		if child.ParentID != nil && *child.ParentID == id {
			child.ParentID = nil
			s.categories[childID] = child
		}
	}
	return true, nil
}

func (s *Store) CreateProduct(_ context.Context, product *catalogdomain.Product) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[product.CategoryID]; !ok {
		s.warn("product insert violated a constraint", slog.String("title", product.Title))
		return 0, nil
	}
	s.nextProductID++
	stored := *product
	stored.ID = s.nextProductID
	s.products[stored.ID] = stored
	return stored.ID, nil
}

// --- ordering ---

func (s *Store) AddProductToOrder(_ context.Context, reservation orderingdomain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[reservation.OrderID]
	if !ok {
		return orderingdomain.ErrOrderNotFound
	}
	product, ok := s.products[reservation.ProductID]
	if !ok {
		return orderingdomain.ErrProductNotFound
	}
	if product.Quantity < reservation.Quantity {
		return &orderingdomain.ProductNotAvailableError{
			ProductID: reservation.ProductID,
			Requested: reservation.Quantity,
			Available: product.Quantity,
		}
	}
	order.Date = time.Now().UTC()
	s.orders[order.ID] = order
	product.Quantity -= reservation.Quantity
	s.products[product.ID] = product
	for id, item := range s.items {
		if item.OrderID == reservation.OrderID && item.ProductID == reservation.ProductID {
			item.Quantity += reservation.Quantity
			s.items[id] = item
			return nil
		}
	}
	s.nextItemID++
	s.items[s.nextItemID] = orderingdomain.OrderItem{
		ID:          s.nextItemID,
		OrderID:     reservation.OrderID,
		ProductID:   reservation.ProductID,
		Quantity:    reservation.Quantity,
		PriceAtTime: product.Price,
	}
	return nil
}

func (s *Store) CreateClient(_ context.Context, client *orderingdomain.Client) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextClientID++
	stored := *client
	stored.ID = s.nextClientID
	s.clients[stored.ID] = stored
	return stored.ID, nil
}

func (s *Store) CreateOrder(_ context.Context, clientID int64) (*orderingdomain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[clientID]; !ok {
		return nil, orderingdomain.ErrClientNotFound
	}
	s.nextOrderID++
	order := orderingdomain.Order{ID: s.nextOrderID, ClientID: clientID, Date: time.Now().UTC()}
	s.orders[order.ID] = order
	return &order, nil
}

func (s *Store) GetOrder(_ context.Context, id int64) (*orderingdomain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, orderingdomain.ErrOrderNotFound
	}
	for _, item := range s.items {
		if item.OrderID == id {
			order.Items = append(order.Items, item)
		}
	}
	sort.Slice(order.Items, func(i, j int) bool { return order.Items[i].ID < order.Items[j].ID })
	return &order, nil
}

// --- reporting ---

func (s *Store) SubcategoryCounts(_ context.Context) ([]reportingdomain.SubcategoryCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[int64]int64, len(s.categories))
	for _, category := range s.categories {
		if category.ParentID != nil {
			counts[*category.ParentID]++
		}
	}
	report := make([]reportingdomain.SubcategoryCount, 0, len(s.categories))
	for _, category := range s.categoriesByID() {
		report = append(report, reportingdomain.SubcategoryCount{
			Title:              category.Title,
			SubcategoriesCount: counts[category.ID],
		})
	}
	return report, nil
}

func (s *Store) ProductSalesSince(_ context.Context, cutoff time.Time) ([]reportingdomain.ProductCategorySales, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	type key struct {
		title      string
		categoryID int64
	}
	totals := map[key]int64{}
	for _, item := range s.items {
		order, ok := s.orders[item.OrderID]
		if !ok || order.Date.Before(cutoff) {
			continue
		}
		product, ok := s.products[item.ProductID]
		if !ok {
			continue
		}
		totals[key{title: product.Title, categoryID: product.CategoryID}] += int64(item.Quantity)
	}
	sales := make([]reportingdomain.ProductCategorySales, 0, len(totals))
	for k, quantity := range totals {
		sales = append(sales, reportingdomain.ProductCategorySales{
			ProductTitle: k.title,
			CategoryID:   k.categoryID,
			Quantity:     quantity,
		})
	}
	return sales, nil
}

func (s *Store) Categories(ctx context.Context) ([]catalogdomain.Category, error) {
	return s.ListCategories(ctx)
}

func (s *Store) ClientOrderSums(_ context.Context) ([]reportingdomain.ClientOrderSum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sums := map[int64]float64{}
	for _, order := range s.orders {
		if _, ok := sums[order.ClientID]; !ok {
			sums[order.ClientID] = 0
		}
	}
	for _, item := range s.items {
		order, ok := s.orders[item.OrderID]
		if !ok {
			continue
		}
		sums[order.ClientID] += item.Subtotal()
	}
	clientIDs := make([]int64, 0, len(sums))
	for id := range sums {
		clientIDs = append(clientIDs, id)
	}
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i] < clientIDs[j] })
	report := make([]reportingdomain.ClientOrderSum, 0, len(clientIDs))
	for _, id := range clientIDs {
		client, ok := s.clients[id]
		if !ok {
			continue
		}
		report = append(report, reportingdomain.ClientOrderSum{Name: client.Name, TotalSum: sums[id]})
	}
	return report, nil
}

func (s *Store) categoriesByID() []catalogdomain.Category {
	categories := make([]catalogdomain.Category, 0, len(s.categories))
	for _, category := range s.categories {
		category.ParentID = cloneInt64Ptr(category.ParentID)
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories
}

func (s *Store) warn(msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
}

func cloneInt64Ptr(v *int64) *int64 {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}
