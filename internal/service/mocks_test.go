package service

import (
	"context"

	"mcqgen/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockExtractor ---
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, doc domain.UploadedDocument) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

// --- MockQuizChain ---
type MockQuizChain struct {
	mock.Mock
}

func (m *MockQuizChain) Generate(ctx context.Context, input domain.ChainInput) (*domain.ChainOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChainOutput), args.Error(1)
}
