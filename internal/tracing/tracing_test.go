package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	p, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "noop")
	require.False(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "zipkin"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported exporter")
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})
	require.Error(t, err)
}

func TestNilProvider_IsSafe(t *testing.T) {
	var p *Provider
	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestStartEnd_RecordsStatus(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	p := NewProviderWithExporter(exp)
	defer func() { _ = p.Shutdown(context.Background()) }()

	_, ok := Start(context.Background(), p.Tracer(), SpanCountByStage, AttrRows.Int(4))
	End(ok, nil)

	_, failed := Start(context.Background(), p.Tracer(), SpanListDeals, AttrSelection.String("quoting"))
	End(failed, errors.New("database is locked"))

	spans := exp.GetSpans()
	require.Len(t, spans, 2)
	require.Equal(t, SpanCountByStage, spans[0].Name)
	require.Equal(t, codes.Ok, spans[0].Status.Code)
	require.Equal(t, SpanListDeals, spans[1].Name)
	require.Equal(t, codes.Error, spans[1].Status.Code)
	require.Equal(t, "database is locked", spans[1].Status.Description)
}

func TestFileExporter_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "traces.jsonl")
	p, err := NewProvider(Config{Enabled: true, Exporter: "file", FilePath: path, SampleRate: 1})
	require.NoError(t, err)

	_, span := Start(context.Background(), p.Tracer(), SpanSaveDeal, AttrDealID.String("d-1"))
	End(span, nil)
	require.NoError(t, p.Shutdown(context.Background()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan(), "expected one span line")

	var rec SpanRecord
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
	require.Equal(t, SpanSaveDeal, rec.Name)
	require.Equal(t, "CLIENT", rec.Kind)
	require.Equal(t, "OK", rec.Status)
	require.Equal(t, "d-1", rec.Attributes[string(AttrDealID)])
}

func TestFileExporter_ExportAfterShutdown(t *testing.T) {
	exp, err := NewFileExporter(filepath.Join(t.TempDir(), "t.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exp.Shutdown(context.Background()))
	require.NoError(t, exp.Shutdown(context.Background()))

	spans := tracetest.SpanStubs{{Name: "late"}}.Snapshots()
	require.Error(t, exp.ExportSpans(context.Background(), spans))
}
