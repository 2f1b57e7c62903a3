package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/application"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/application/types"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/domain"
	"github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/ports"
)

const tracerName = "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) AddItem(ctx context.Context, input types.AddItemInput) (*domain.Item, error) {
	ctx, span := s.startSpan(ctx, "InventoryService.AddItem", attribute.String("item.name", input.Name))
	defer span.End()

	s.logInfo(ctx, "adding item", slog.String("item.name", input.Name))
	item, err := s.inner.AddItem(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add item", slog.String("item.name", input.Name))
	}
	s.metrics.recordAdded(ctx)
	s.logInfo(ctx, "item added", slog.String("item.name", item.Name), slog.Int64("item.quantity", item.Quantity))
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, name string) error {
	ctx, span := s.startSpan(ctx, "InventoryService.RemoveItem", attribute.String("item.name", name))
	defer span.End()

	s.logInfo(ctx, "removing item", slog.String("item.name", name))
	if err := s.inner.RemoveItem(ctx, name); err != nil {
		return s.handleError(ctx, span, err, "failed to remove item", slog.String("item.name", name))
	}
	s.metrics.recordRemoved(ctx)
	s.logInfo(ctx, "item removed", slog.String("item.name", name))
	return nil
}

func (s *Service) UpdateQuantity(ctx context.Context, input types.UpdateQuantityInput) (*domain.Item, error) {
	ctx, span := s.startSpan(ctx, "InventoryService.UpdateQuantity", attribute.String("item.name", input.Name))
	defer span.End()

	s.logInfo(ctx, "updating item quantity", slog.String("item.name", input.Name))
	item, err := s.inner.UpdateQuantity(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update item quantity", slog.String("item.name", input.Name))
	}
	s.metrics.recordQuantityUpdated(ctx)
	span.SetAttributes(attribute.Int64("item.quantity", item.Quantity))
	s.logInfo(ctx, "item quantity updated", slog.String("item.name", item.Name), slog.Int64("item.quantity", item.Quantity))
	return item, nil
}

func (s *Service) GetItems(ctx context.Context) ([]*domain.Item, error) {
	ctx, span := s.startSpan(ctx, "InventoryService.GetItems")
	defer span.End()

	s.logInfo(ctx, "listing items")
	items, err := s.inner.GetItems(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list items")
	}
	span.SetAttributes(attribute.Int("item.result.count", len(items)))
	s.logInfo(ctx, "listed items", slog.Int("count", len(items)))
	return items, nil
}

func (s *Service) GetItem(ctx context.Context, name string) (*domain.Item, error) {
	ctx, span := s.startSpan(ctx, "InventoryService.GetItem", attribute.String("item.name", name))
	defer span.End()

	item, err := s.inner.GetItem(ctx, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load item", slog.String("item.name", name))
	}
	return item, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

// handleError records the failure. Only storage failures are logged at error
// level; the rest are caller mistakes and go out as warnings.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	kind := failureKind(err)
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.kind", kind))
	}
	s.metrics.recordFailure(ctx, kind)
	level := slog.LevelWarn
	if kind == "storage" {
		level = slog.LevelError
	}
	s.logError(ctx, level, msg, err, append(attrs, slog.String("error.kind", kind))...)
	return err
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ports.ErrNotFound):
		return "not_found"
	case errors.Is(err, ports.ErrAlreadyExists):
		return "already_exists"
	default:
		return "storage"
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	itemsAdded      metric.Int64Counter
	itemsRemoved    metric.Int64Counter
	quantityUpdates metric.Int64Counter
	failures        metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("inventory.service.items_added", metric.WithDescription("Number of items created"))
	itemsRemoved, _ := m.Int64Counter("inventory.service.items_removed", metric.WithDescription("Number of items removed"))
	quantityUpdates, _ := m.Int64Counter("inventory.service.quantity_updates", metric.WithDescription("Number of quantity overwrites"))
	failures, _ := m.Int64Counter("inventory.service.failures", metric.WithDescription("Number of failed operations by kind"))
	return serviceMetrics{
		itemsAdded:      itemsAdded,
		itemsRemoved:    itemsRemoved,
		quantityUpdates: quantityUpdates,
		failures:        failures,
	}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	addCounter(ctx, m.itemsAdded, 1)
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	addCounter(ctx, m.itemsRemoved, 1)
}

func (m serviceMetrics) recordQuantityUpdated(ctx context.Context) {
	addCounter(ctx, m.quantityUpdates, 1)
}

func (m serviceMetrics) recordFailure(ctx context.Context, kind string) {
	addCounter(ctx, m.failures, 1, attribute.String("kind", kind))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
