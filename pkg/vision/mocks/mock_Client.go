// Package mocks provides test doubles for the vision client.
package mocks

import (
	"context"

	vision "github.com/sells-group/fakecheck/pkg/vision"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// DetectWeb provides a mock function with given fields: ctx, image
func (_m *MockClient) DetectWeb(ctx context.Context, image []byte) (*vision.WebDetection, error) {
	ret := _m.Called(ctx, image)

	if len(ret) == 0 {
		panic("no return value specified for DetectWeb")
	}

	var r0 *vision.WebDetection
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, []byte) (*vision.WebDetection, error)); ok {
		return rf(ctx, image)
	}
	if rf, ok := ret.Get(0).(func(context.Context, []byte) *vision.WebDetection); ok {
		r0 = rf(ctx, image)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*vision.WebDetection)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, []byte) error); ok {
		r1 = rf(ctx, image)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
