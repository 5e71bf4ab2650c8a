package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderingdomain "github.com/Apurer/go-gin-order-server/internal/domains/ordering/domain"
	orderingports "github.com/Apurer/go-gin-order-server/internal/domains/ordering/ports"
)

const tracerName = "github.com/Apurer/go-gin-order-server/internal/domains/ordering/adapters/observability/service"

// Service decorates the ordering service with tracing, logging, and metrics.
type Service struct {
	inner   orderingports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core ordering service.
func New(inner orderingports.Service, opts ...Option) orderingports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) AddProductToOrder(ctx context.Context, orderID, productID int64, quantity int32) error {
	ctx, span := s.tracer.Start(ctx, "OrderingService.AddProductToOrder",
		trace.WithAttributes(
			attribute.Int64("order.id", orderID),
			attribute.Int64("product.id", productID),
			attribute.Int("reservation.quantity", int(quantity))))
	defer span.End()

	s.logInfo(ctx, "reserving product for order",
		slog.Int64("order.id", orderID), slog.Int64("product.id", productID), slog.Int("quantity", int(quantity)))
	if err := s.inner.AddProductToOrder(ctx, orderID, productID, quantity); err != nil {
		s.metrics.recordReservation(ctx, false)
		return s.handleError(ctx, span, err, "failed to reserve product",
			slog.Int64("order.id", orderID), slog.Int64("product.id", productID))
	}
	s.metrics.recordReservation(ctx, true)
	s.logInfo(ctx, "product reserved", slog.Int64("order.id", orderID), slog.Int64("product.id", productID))
	return nil
}

func (s *Service) CreateClient(ctx context.Context, client *orderingdomain.Client) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderingService.CreateClient")
	defer span.End()

	s.logInfo(ctx, "creating client", slog.String("client.name", client.Name))
	id, err := s.inner.CreateClient(ctx, client)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to create client", slog.String("client.name", client.Name))
	}
	span.SetAttributes(attribute.Int64("client.id", id))
	s.logInfo(ctx, "client created", slog.Int64("client.id", id))
	return id, nil
}

func (s *Service) CreateOrder(ctx context.Context, clientID int64) (*orderingdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderingService.CreateOrder",
		trace.WithAttributes(attribute.Int64("client.id", clientID)))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.Int64("client.id", clientID))
	order, err := s.inner.CreateOrder(ctx, clientID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.Int64("client.id", clientID))
	}
	s.metrics.recordOrderCreated(ctx)
	s.logInfo(ctx, "order created", slog.Int64("order.id", order.ID))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*orderingdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderingService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	span.SetAttributes(attribute.Int("order.items.count", len(order.Items)))
	return order, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	reservations  metric.Int64Counter
	ordersCreated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	reservations, _ := m.Int64Counter("ordering.service.reservations",
		metric.WithDescription("Number of product reservation attempts"))
	ordersCreated, _ := m.Int64Counter("ordering.service.orders_created",
		metric.WithDescription("Number of orders created"))
	return serviceMetrics{reservations: reservations, ordersCreated: ordersCreated}
}

func (m serviceMetrics) recordReservation(ctx context.Context, ok bool) {
	if m.reservations != nil {
		m.reservations.Add(ctx, 1, metric.WithAttributes(attribute.Bool("reservation.applied", ok)))
	}
}

func (m serviceMetrics) recordOrderCreated(ctx context.Context) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1)
	}
}

var _ orderingports.Service = (*Service)(nil)
