package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSearch_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	s := newFakeStore()
	s.records = sampleRecords()
	svc := newService(s, &fakeGroups{}, Settings{})

	result, err := svc.Search(context.Background(), model.SearchRequest{Term: "e", Dimensions: []string{"person_name"}})
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), model.SearchRequest{Term: "e"})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "Directory.Service.Search", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("phonebook.term", "e"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("phonebook.total", result.TotalCount))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}
