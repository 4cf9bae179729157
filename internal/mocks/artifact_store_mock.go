package mocks

import (
	"github.com/stretchr/testify/mock"
)

type ArtifactStoreMock struct {
	mock.Mock
}

func (m *ArtifactStoreMock) SaveUpload(jobID, originalFilename string, contents []byte) (string, error) {
	args := m.Called(jobID, originalFilename, contents)
	return args.String(0), args.Error(1)
}

func (m *ArtifactStoreMock) Delete(path string) {
	m.Called(path)
}
