// Package controller wires the "show all" and "search" triggers to the
// fetch, aggregate and render pipeline.
package controller

import (
	"context"
	"errors"
	"html/template"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"countrystats/internal/model"
	"countrystats/internal/requestcontext"
	"countrystats/internal/restcountries"
	"countrystats/internal/stats"
)

// Fetcher is the upstream country source.
type Fetcher interface {
	All(ctx context.Context) ([]model.Country, error)
	SearchByName(ctx context.Context, name string) ([]model.Country, error)
}

// Renderer turns an aggregate and its records into markup.
type Renderer interface {
	Fragment(summary model.AggregateResult, countries []model.Country) (template.HTML, error)
}

// Actions are the user triggers.
type Actions interface {
	// ShowAll fetches every country and summarizes them.
	ShowAll(ctx context.Context, d Display)
	// Search summarizes the countries matching query after trimming it.
	Search(ctx context.Context, query string, d Display)
}

// Controller implements Actions. It holds no per-trigger state, so one
// instance serves concurrent triggers; each trigger writes only its own Display.
type Controller struct {
	fetcher  Fetcher
	renderer Renderer
	logger   *zap.Logger
	tracer   trace.Tracer
}

// Option configures a Controller.
type Option func(*Controller)

// WithTracerProvider takes trigger spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Controller) {
		c.tracer = tp.Tracer(tracerName)
	}
}

const tracerName = "countrystats/controller"

// New constructs a Controller.
func New(f Fetcher, r Renderer, logger *zap.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		fetcher:  f,
		renderer: r,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) ShowAll(ctx context.Context, d Display) {
	ctx, span := c.tracer.Start(ctx, "controller.ShowAll")
	defer span.End()
	log := c.logger.With(zap.String("trigger", "all"), requestIDField(ctx))
	log.Debug("state", zap.Stringer("state", StateLoading))

	countries, err := c.fetcher.All(ctx)
	if err != nil {
		c.fail(span, log, d, &Failure{Kind: KindFetch, Message: msgAllFailed + err.Error(), Err: err})
		return
	}
	c.succeed(span, log, d, countries)
}

func (c *Controller) Search(ctx context.Context, query string, d Display) {
	ctx, span := c.tracer.Start(ctx, "controller.Search")
	defer span.End()
	log := c.logger.With(zap.String("trigger", "search"), requestIDField(ctx))

	name := strings.TrimSpace(query)
	if name == "" {
		c.fail(span, log, d, &Failure{Kind: KindEmptyQuery, Message: MsgEmptyQuery})
		return
	}
	span.SetAttributes(attribute.String("country.query", name))
	log = log.With(zap.String("query", name))
	log.Debug("state", zap.Stringer("state", StateLoading))

	countries, err := c.fetcher.SearchByName(ctx, name)
	switch {
	case errors.Is(err, restcountries.ErrNotFound):
		c.fail(span, log, d, &Failure{Kind: KindNotFound, Message: MsgNotFound, Err: err})
		return
	case err != nil:
		c.fail(span, log, d, &Failure{Kind: KindFetch, Message: msgSearchFailed + err.Error(), Err: err})
		return
	case len(countries) == 0:
		c.fail(span, log, d, &Failure{Kind: KindNoResults, Message: MsgNoResults})
		return
	}
	c.succeed(span, log, d, countries)
}

func (c *Controller) succeed(span trace.Span, log *zap.Logger, d Display, countries []model.Country) {
	summary := stats.Aggregate(countries)
	frag, err := c.renderer.Fragment(summary, countries)
	if err != nil {
		c.fail(span, log, d, &Failure{Kind: KindRender, Message: msgRenderFailed + err.Error(), Err: err})
		return
	}

	span.SetAttributes(
		attribute.Int("countries.total", summary.TotalCountries),
		attribute.Int("countries.regions", len(summary.Regions)),
	)
	log.Info("trigger completed",
		zap.Stringer("state", StateSuccess),
		zap.Int("total_countries", summary.TotalCountries),
		zap.Int64("total_population", summary.TotalPopulation),
	)
	d.ShowResults(&Results{Summary: summary, Countries: countries, Fragment: frag})
}

func (c *Controller) fail(span trace.Span, log *zap.Logger, d Display, f *Failure) {
	span.SetAttributes(attribute.String("failure.kind", f.Kind.String()))
	fields := []zap.Field{zap.Stringer("state", StateError), zap.Stringer("kind", f.Kind)}
	switch f.Kind {
	case KindFetch, KindRender:
		span.RecordError(f.Err)
		span.SetStatus(codes.Error, f.Kind.String())
		log.Warn("trigger failed", append(fields, zap.Error(f.Err))...)
	default:
		log.Info("trigger rejected", fields...)
	}
	d.ShowError(f)
}

func requestIDField(ctx context.Context) zap.Field {
	return zap.String("request_id", requestcontext.RequestID(ctx))
}
