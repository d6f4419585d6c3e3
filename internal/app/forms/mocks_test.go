package forms

import (
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"context"

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

// fakeGuard is an in-memory busy flag that counts releases.
type fakeGuard struct {
	busy     map[string]bool
	released int
	err      error
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{busy: map[string]bool{}}
}

func (g *fakeGuard) Acquire(ctx context.Context, instanceID string) (func(), error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.busy[instanceID] {
		return nil, errBusy
	}
	g.busy[instanceID] = true
	return func() {
		g.busy[instanceID] = false
		g.released++
	}, nil
}

func (g *fakeGuard) IsBusy(ctx context.Context, instanceID string) (bool, error) {
	return g.busy[instanceID], nil
}

type recordingEffects struct {
	navigations []string
	modal       []bool
	resets      int
}

func (e *recordingEffects) NavigateTo(path string) { e.navigations = append(e.navigations, path) }
func (e *recordingEffects) SetOpen(open bool)      { e.modal = append(e.modal, open) }
func (e *recordingEffects) ResetFields()           { e.resets++ }
