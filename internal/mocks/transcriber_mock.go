package mocks

import (
	"context"

	"github.com/nyralei/scribeq/internal/models"
	"github.com/nyralei/scribeq/internal/transcribe"
	"github.com/stretchr/testify/mock"
)

type TranscriberMock struct {
	mock.Mock
}

func (m *TranscriberMock) Transcribe(ctx context.Context, job *models.TranscriptionJob) (*transcribe.Result, error) {
	args := m.Called(ctx, job)

	result, _ := args.Get(0).(*transcribe.Result)
	return result, args.Error(1)
}
