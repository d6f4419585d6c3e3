package routers

import (
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"carepulse-service/internal/pkg/exceptions"
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockIdentityUsecase struct {
	mock.Mock
}

func (m *MockIdentityUsecase) CreateIdentity(ctx context.Context, request *requests.CreateIdentity) (*responses.Identity, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Identity), args.Error(1)
}

func (m *MockIdentityUsecase) FindByID(ctx context.Context, userID string) (*responses.Identity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Identity), args.Error(1)
}

type MockPatientUsecase struct {
	mock.Mock
}

func (m *MockPatientUsecase) CreateProfile(ctx context.Context, request *requests.CreateProfile) (*responses.Patient, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Patient), args.Error(1)
}

func (m *MockPatientUsecase) FindByUserID(ctx context.Context, userID string) (*responses.Patient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Patient), args.Error(1)
}

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Appointment), args.Error(1)
}

func (m *MockAppointmentUsecase) UpdateAppointment(ctx context.Context, request *requests.UpdateAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Appointment), args.Error(1)
}

func (m *MockAppointmentUsecase) FindByID(ctx context.Context, request *requests.FindAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Appointment), args.Error(1)
}

type memoryGuard struct {
	mu   sync.Mutex
	busy map[string]bool
}

func newMemoryGuard() *memoryGuard {
	return &memoryGuard{busy: map[string]bool{}}
}

func (g *memoryGuard) Acquire(ctx context.Context, instanceID string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[instanceID] {
		return nil, exceptions.ErrSubmissionInProgress(nil, instanceID)
	}
	g.busy[instanceID] = true
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.busy, instanceID)
	}, nil
}

func (g *memoryGuard) IsBusy(ctx context.Context, instanceID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy[instanceID], nil
}

func (g *memoryGuard) markBusy(instanceID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy[instanceID] = true
}
