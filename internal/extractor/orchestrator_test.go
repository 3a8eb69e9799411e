package extractor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/port"
	"github.com/philipeduarte001/licitacao/mocks"
)

var testInput = port.ExtractInput{FileName: "edital.pdf", Text: "Processo: 123", PageCount: 2}

func acceptedNotice() *domain.Notice {
	return &domain.Notice{Process: "123", Object: "Lanternas"}
}

func TestExtract_FirstStrategyAccepted(t *testing.T) {
	first := new(mocks.MockExtractStrategy)
	second := new(mocks.MockExtractStrategy)

	first.On("Available").Return(true)
	first.On("Name").Return("cloud").Maybe()
	first.On("Extract", mock.Anything, testInput).Return(acceptedNotice(), nil)

	o := NewOrchestrator(first, second)
	rec := o.Extract(context.Background(), testInput)

	assert.Equal(t, "123", rec.Process)
	second.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestExtract_UnavailableStrategySkipped(t *testing.T) {
	first := new(mocks.MockExtractStrategy)
	second := new(mocks.MockExtractStrategy)

	first.On("Available").Return(false)
	first.On("Name").Return("cloud").Maybe()
	second.On("Available").Return(true)
	second.On("Name").Return("local-regex").Maybe()
	second.On("Extract", mock.Anything, testInput).Return(acceptedNotice(), nil)

	o := NewOrchestrator(first, second)
	rec := o.Extract(context.Background(), testInput)

	assert.Equal(t, "123", rec.Process)
	first.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestExtract_ErrorFallsThrough(t *testing.T) {
	first := new(mocks.MockExtractStrategy)
	second := new(mocks.MockExtractStrategy)

	first.On("Available").Return(true)
	first.On("Name").Return("cloud").Maybe()
	first.On("Extract", mock.Anything, testInput).Return(nil, errors.New("boom"))
	second.On("Available").Return(true)
	second.On("Name").Return("local-regex").Maybe()
	second.On("Extract", mock.Anything, testInput).Return(acceptedNotice(), nil)

	o := NewOrchestrator(first, second)
	rec := o.Extract(context.Background(), testInput)

	assert.Equal(t, "123", rec.Process)
}

func TestExtract_RejectedResultKeptAsFallback(t *testing.T) {
	first := new(mocks.MockExtractStrategy)
	second := new(mocks.MockExtractStrategy)

	empty := &domain.Notice{Notes: "texto ilegível"}
	first.On("Available").Return(true)
	first.On("Name").Return("cloud").Maybe()
	first.On("Extract", mock.Anything, testInput).Return(empty, nil)
	second.On("Available").Return(true)
	second.On("Name").Return("local-regex").Maybe()
	second.On("Extract", mock.Anything, testInput).Return(&domain.Notice{}, nil)

	o := NewOrchestrator(first, second)
	rec := o.Extract(context.Background(), testInput)

	// The last rejected record wins over the default empty one.
	assert.NotNil(t, rec)
	assert.False(t, rec.HasKeyField())
}

func TestExtract_NoStrategiesProducesDefaultRecord(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	o := NewOrchestratorWithClock(func() time.Time { return fixed })

	rec := o.Extract(context.Background(), testInput)

	assert.Equal(t, fixed, rec.Timestamp)
	assert.NotEmpty(t, rec.Notes)
	assert.Empty(t, rec.Items)
	assert.False(t, rec.HasKeyField())
}
