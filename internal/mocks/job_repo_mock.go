package mocks

import (
	"context"

	"github.com/nyralei/scribeq/internal/models"
	"github.com/stretchr/testify/mock"
)

type JobRepoMock struct {
	mock.Mock
}

func (m *JobRepoMock) Create(ctx context.Context, job *models.TranscriptionJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobRepoMock) ClaimNextPending(ctx context.Context) (*models.TranscriptionJob, error) {
	args := m.Called(ctx)

	job, _ := args.Get(0).(*models.TranscriptionJob)
	return job, args.Error(1)
}

func (m *JobRepoMock) Update(ctx context.Context, job *models.TranscriptionJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobRepoMock) Get(ctx context.Context, id string) (*models.TranscriptionJob, error) {
	args := m.Called(ctx, id)

	job, _ := args.Get(0).(*models.TranscriptionJob)
	return job, args.Error(1)
}

func (m *JobRepoMock) List(ctx context.Context, page, limit int, status string) ([]models.TranscriptionJob, int64, error) {
	args := m.Called(ctx, page, limit, status)

	jobs, _ := args.Get(0).([]models.TranscriptionJob)
	total, _ := args.Get(1).(int64)
	return jobs, total, args.Error(2)
}

func (m *JobRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
