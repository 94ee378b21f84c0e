package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const defaultServiceName = "team-ledger"

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx               context.Context
	meter             metric.Meter
	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	storeOps          metric.Int64Counter
	storeErrors       metric.Int64Counter
	storeLatencyMs    metric.Float64Histogram
	storeRecoveries   metric.Int64Counter
	maintenanceRuns   metric.Int64Counter
	maintenanceErrors metric.Int64Counter
	titlesChanged     metric.Int64Counter
	maintenanceMs     metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(defaultServiceName)
	inst := &otelInstruments{ctx: context.Background(), meter: meter}

	counters := []struct {
		name string
		dst  *metric.Int64Counter
	}{
		{"http_requests_total", &inst.requests},
		{"docstore_operations_total", &inst.storeOps},
		{"docstore_errors_total", &inst.storeErrors},
		{"docstore_recoveries_total", &inst.storeRecoveries},
		{"maintenance_runs_total", &inst.maintenanceRuns},
		{"maintenance_errors_total", &inst.maintenanceErrors},
		{"maintenance_titles_changed_total", &inst.titlesChanged},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	histograms := []struct {
		name string
		dst  *metric.Float64Histogram
	}{
		{"http_request_duration_ms", &inst.requestLatencyMs},
		{"docstore_duration_ms", &inst.storeLatencyMs},
		{"maintenance_duration_ms", &inst.maintenanceMs},
	}
	for _, h := range histograms {
		hist, err := meter.Float64Histogram(h.name)
		if err != nil {
			return nil, err
		}
		*h.dst = hist
	}

	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordStoreOperation(collection, op string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrCollection, collection),
		attribute.String(AttrOperation, op),
	}
	o.recordCounter(o.storeOps, 1, attrs...)
	o.recordHistogram(o.storeLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.storeErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRecovery(collection string) {
	if o == nil {
		return
	}
	o.recordCounter(o.storeRecoveries, 1, attribute.String(AttrCollection, collection))
}

func (o *otelInstruments) recordMaintenance(duration time.Duration, changed int, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.maintenanceRuns, 1)
	o.recordHistogram(o.maintenanceMs, float64(duration.Milliseconds()))
	if changed > 0 {
		o.recordCounter(o.titlesChanged, int64(changed))
	}
	if err != nil {
		o.recordCounter(o.maintenanceErrors, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil || counter == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil || hist == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
