package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanCountByStage = "store.count_by_stage"
	SpanFindDeal     = "store.find_deal"
	SpanListDeals    = "store.list_deals"
	SpanSaveDeal     = "store.save_deal"
	SpanMoveDeal     = "store.move_deal"
	SpanDeleteDeal   = "store.delete_deal"
	SpanMigrate      = "store.migrate"
)

// Attribute keys.
const (
	AttrStage     = attribute.Key("deal.stage")
	AttrSelection = attribute.Key("deal.selection")
	AttrDealID    = attribute.Key("deal.id")
	AttrRows      = attribute.Key("db.rows")
)

// Start begins a client span named name on tracer.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
