package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Token decode results recorded by RecordTokenDecode.
const (
	DecodeResultValid   = "valid"
	DecodeResultInvalid = "invalid"
	DecodeResultError   = "error"
)

// BusinessMetrics records use case level metrics.
type BusinessMetrics interface {
	// RecordOperation counts an operation, e.g. ("application", "roll_salt", "success").
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records how long an operation took, in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordTokenDecode counts a token verification by result (valid, invalid or error).
	RecordTokenDecode(ctx context.Context, result string)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	decodeCounter    metric.Int64Counter
}

// NewBusinessMetrics creates the business instruments under namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	decodeCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_token_decodes_total", namespace),
		metric.WithDescription("Total number of application token verifications by result"),
		metric.WithUnit("{decode}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token decode counter: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		decodeCounter:    decodeCounter,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1, metric.WithAttributes(operationAttrs(domain, operation, status)...))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(
		ctx,
		duration.Seconds(),
		metric.WithAttributes(operationAttrs(domain, operation, status)...),
	)
}

func (b *businessMetrics) RecordTokenDecode(ctx context.Context, result string) {
	b.decodeCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func operationAttrs(domain, operation, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	}
}

// NoOpBusinessMetrics discards everything; used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordTokenDecode(ctx context.Context, result string) {}
