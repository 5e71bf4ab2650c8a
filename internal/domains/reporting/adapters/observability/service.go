package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	reportingdomain "github.com/Apurer/go-gin-order-server/internal/domains/reporting/domain"
	reportingports "github.com/Apurer/go-gin-order-server/internal/domains/reporting/ports"
)

const tracerName = "github.com/Apurer/go-gin-order-server/internal/domains/reporting/adapters/observability/service"

// Service decorates the reporting service with tracing, logging, and metrics.
type Service struct {
	inner   reportingports.Service
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

// New wraps the core reporting service.
func New(inner reportingports.Service, opts ...Option) reportingports.Service {
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

func (s *Service) CountImmediateSubcategories(ctx context.Context) ([]reportingdomain.SubcategoryCount, error) {
	ctx, span := s.tracer.Start(ctx, "ReportingService.CountImmediateSubcategories")
	defer span.End()

	result, err := s.inner.CountImmediateSubcategories(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to count subcategories")
	}
	span.SetAttributes(attribute.Int("report.categories.count", len(result)))
	s.metrics.recordReport(ctx, "subcategories")
	return result, nil
}

func (s *Service) TopSellingProducts(ctx context.Context, windowDays, limit int) ([]reportingdomain.TopProduct, error) {
	ctx, span := s.tracer.Start(ctx, "ReportingService.TopSellingProducts",
		trace.WithAttributes(attribute.Int("report.window_days", windowDays), attribute.Int("report.limit", limit)))
	defer span.End()

	result, err := s.inner.TopSellingProducts(ctx, windowDays, limit)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to compute top-selling products")
	}
	span.SetAttributes(attribute.Int("report.rows.count", len(result)))
	s.metrics.recordReport(ctx, "top_products")
	return result, nil
}

func (s *Service) ClientOrderTotals(ctx context.Context) ([]reportingdomain.ClientOrderSum, error) {
	ctx, span := s.tracer.Start(ctx, "ReportingService.ClientOrderTotals")
	defer span.End()

	result, err := s.inner.ClientOrderTotals(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to compute client order totals")
	}
	span.SetAttributes(attribute.Int("report.clients.count", len(result)))
	s.metrics.recordReport(ctx, "client_totals")
	return result, nil
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
	reports metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	reports, _ := m.Int64Counter("reporting.service.reports",
		metric.WithDescription("Number of reports served"))
	return serviceMetrics{reports: reports}
}

func (m serviceMetrics) recordReport(ctx context.Context, kind string) {
	if m.reports != nil {
		m.reports.Add(ctx, 1, metric.WithAttributes(attribute.String("report.kind", kind)))
	}
}

var _ reportingports.Service = (*Service)(nil)
