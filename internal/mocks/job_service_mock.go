package mocks

import (
	"context"

	"github.com/nyralei/scribeq/internal/dto"
	"github.com/stretchr/testify/mock"
)

type JobServiceMock struct {
	mock.Mock
}

func (m *JobServiceMock) CreateJob(
	ctx context.Context,
	req *dto.JobCreateDTO,
	filename string,
	contents []byte,
) (*dto.JobResponseDTO, error) {
	args := m.Called(ctx, req, filename, contents)

	resp, _ := args.Get(0).(*dto.JobResponseDTO)
	return resp, args.Error(1)
}

func (m *JobServiceMock) GetJobByID(ctx context.Context, id string) (*dto.JobResponseDTO, error) {
	args := m.Called(ctx, id)

	resp, _ := args.Get(0).(*dto.JobResponseDTO)
	return resp, args.Error(1)
}

func (m *JobServiceMock) ListJobs(ctx context.Context, page, limit int, status string) (*dto.JobListResponseDTO, error) {
	args := m.Called(ctx, page, limit, status)

	resp, _ := args.Get(0).(*dto.JobListResponseDTO)
	return resp, args.Error(1)
}

func (m *JobServiceMock) DeleteJob(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
