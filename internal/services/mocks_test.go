package services_test

import (
	"context"

	"github.com/koordynuj/koordynuj-api/pkg/resend"
	"github.com/koordynuj/koordynuj-api/pkg/strapi"
	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of services.EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(msg *resend.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

// MockContactWriter is a mock implementation of services.ContactWriter
type MockContactWriter struct {
	mock.Mock
}

func (m *MockContactWriter) CreateContact(ctx context.Context, record *strapi.ContactRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockBuildTrigger is a mock implementation of services.BuildTrigger
type MockBuildTrigger struct {
	mock.Mock
}

func (m *MockBuildTrigger) Fire(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
