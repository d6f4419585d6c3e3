package routers

import (
	"bytes"
	"carepulse-service/internal/app/config"
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/app/delivery/http/controllers"
	"carepulse-service/internal/app/delivery/http/middlewares"
	"carepulse-service/internal/app/forms"
	"carepulse-service/internal/app/models"
	"carepulse-service/internal/app/services/shared/formtoken"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"carepulse-service/internal/pkg/exceptions"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	router       *chi.Mux
	tokens       contracts.FormTokenService
	guard        *memoryGuard
	identities   *MockIdentityUsecase
	patients     *MockPatientUsecase
	appointments *MockAppointmentUsecase
}

type viewEnvelope struct {
	Success bool       `json:"success"`
	Data    forms.View `json:"data"`
}

type submitEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		RedirectTo  string          `json:"redirect_to"`
		ModalOpen   *bool           `json:"modal_open"`
		ResetFields bool            `json:"reset_fields"`
		Result      json.RawMessage `json:"result"`
	} `json:"data"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:             "api",
			Version:                    "v1",
			RequestBodyLimitInMegabyte: 6,
			RequestTimeoutInSeconds:    10,
		},
		Minio: config.AppMinio{IdentificationDocumentMaxUploadSizeInMB: 1},
	}

	tokens, err := formtoken.NewFormTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	renderer, err := forms.NewRenderer()
	require.NoError(t, err)

	env := &testEnv{
		router:       chi.NewRouter(),
		tokens:       tokens,
		guard:        newMemoryGuard(),
		identities:   new(MockIdentityUsecase),
		patients:     new(MockPatientUsecase),
		appointments: new(MockAppointmentUsecase),
	}

	formController := &controllers.FormController{
		Log:                logger,
		InternalConfig:     internalConfig,
		FormTokenService:   tokens,
		SubmissionGuard:    env.guard,
		IdentityUsecase:    env.identities,
		AppointmentUsecase: env.appointments,
		IntakeForm:         forms.NewIntakeForm(env.identities, env.guard, logger),
		RegistrationForm:   forms.NewRegistrationForm(env.patients, env.guard, logger),
		AppointmentForm:    forms.NewAppointmentForm(env.appointments, env.guard, logger),
		Renderer:           renderer,
	}

	SetupRoutes(env.router, internalConfig, middlewares.NewMiddlewares(logger, internalConfig), formController)
	return env
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

func (env *testEnv) getView(t *testing.T, target string) forms.View {
	t.Helper()
	rr := env.do(httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var envelope viewEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data
}

func jsonRequest(t *testing.T, target, token string, body interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(constvars.HeaderXFormToken, token)
	}
	return req
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
}

func TestIntakeRoutes(t *testing.T) {
	t.Run("issue then submit as JSON", func(t *testing.T) {
		env := newTestEnv(t)
		view := env.getView(t, "/api/v1/forms/intake")
		assert.Equal(t, constvars.FormKindIntake, view.Kind)
		assert.Equal(t, "/api/v1/forms/intake", view.Action)
		assert.True(t, view.Submit.Accepts())

		env.identities.On("CreateIdentity", mock.Anything, &requests.CreateIdentity{
			Name: "Jane Doe", Email: "jane@example.com", Phone: "+14155552671",
		}).Return(&responses.Identity{ID: "u1"}, nil).Once()

		rr := env.do(jsonRequest(t, "/api/v1/forms/intake", view.Token, map[string]string{
			"name": "Jane Doe", "email": "jane@example.com", "phone": "+14155552671",
		}))

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var envelope submitEnvelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)
		assert.Equal(t, "/patients/u1/register", envelope.Data.RedirectTo)
		env.identities.AssertExpectations(t)
	})

	t.Run("submit without a token is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		rr := env.do(jsonRequest(t, "/api/v1/forms/intake", "", map[string]string{"name": "Jane"}))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		env.identities.AssertNotCalled(t, "CreateIdentity", mock.Anything, mock.Anything)
	})

	t.Run("a token for another form is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		token, err := env.tokens.Issue(contracts.FormClaims{Kind: constvars.FormKindAppointment, Mode: "create"})
		require.NoError(t, err)

		rr := env.do(jsonRequest(t, "/api/v1/forms/intake", token, map[string]string{"name": "Jane"}))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("a busy instance answers 409 and reports busy on reload", func(t *testing.T) {
		env := newTestEnv(t)
		view := env.getView(t, "/api/v1/forms/intake")
		claims, err := env.tokens.Verify(view.Token)
		require.NoError(t, err)
		env.guard.markBusy(claims.InstanceID())

		rr := env.do(jsonRequest(t, "/api/v1/forms/intake", view.Token, map[string]string{
			"name": "Jane Doe", "email": "jane@example.com", "phone": "+14155552671",
		}))
		assert.Equal(t, http.StatusConflict, rr.Code)

		reload := httptest.NewRequest(http.MethodGet, "/api/v1/forms/intake", nil)
		reload.Header.Set(constvars.HeaderXFormToken, view.Token)
		rr = env.do(reload)
		var envelope viewEnvelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.Equal(t, view.Token, envelope.Data.Token)
		assert.True(t, envelope.Data.Submit.Busy)
		assert.True(t, envelope.Data.Submit.Disabled)
	})

	t.Run("validation errors are reported per field", func(t *testing.T) {
		env := newTestEnv(t)
		view := env.getView(t, "/api/v1/forms/intake")

		rr := env.do(jsonRequest(t, "/api/v1/forms/intake", view.Token, map[string]string{
			"name": "J", "email": "not-an-email", "phone": "+14155552671",
		}))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		var body exceptions.CustomError
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Contains(t, body.Fields, "name")
		assert.Contains(t, body.Fields, "email")
	})

	t.Run("an HTML form post is redirected", func(t *testing.T) {
		env := newTestEnv(t)
		view := env.getView(t, "/api/v1/forms/intake")

		env.identities.On("CreateIdentity", mock.Anything, mock.Anything).Return(&responses.Identity{ID: "u9"}, nil).Once()

		form := url.Values{
			constvars.FormFieldToken: {view.Token},
			"name":                   {"Jane Doe"},
			"email":                  {"jane@example.com"},
			"phone":                  {"+14155552671"},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/forms/intake", strings.NewReader(form.Encode()))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)
		req.Header.Set(constvars.HeaderAccept, constvars.MIMETextHTML)

		rr := env.do(req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/patients/u9/register", rr.Header().Get("Location"))
	})
}

func TestRegistrationRoutes(t *testing.T) {
	identity := &responses.Identity{ID: "u1", Name: "Jane Doe", Email: "jane@example.com", Phone: "+14155552671"}

	t.Run("the HTML view is pre-filled from the identity", func(t *testing.T) {
		env := newTestEnv(t)
		env.identities.On("FindByID", mock.Anything, "u1").Return(identity, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/forms/registration/u1", nil)
		req.Header.Set(constvars.HeaderAccept, "text/html,application/xhtml+xml")
		rr := env.do(req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.MIMETextHTMLCharsetUTF8, rr.Header().Get(constvars.HeaderContentType))
		assert.Contains(t, rr.Body.String(), `value="jane@example.com"`)
		assert.Contains(t, rr.Body.String(), `enctype="multipart/form-data"`)
	})

	t.Run("unknown identity", func(t *testing.T) {
		env := newTestEnv(t)
		env.identities.On("FindByID", mock.Anything, "ghost").Return(nil, exceptions.ErrIdentityNotFound(nil, "ghost")).Once()

		rr := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/forms/registration/ghost", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("multipart submit with and without a document", func(t *testing.T) {
		for _, withDocument := range []bool{false, true} {
			env := newTestEnv(t)
			env.identities.On("FindByID", mock.Anything, "u1").Return(identity, nil).Once()
			view := env.getView(t, "/api/v1/forms/registration/u1")

			env.patients.On("CreateProfile", mock.Anything, mock.MatchedBy(func(request *requests.CreateProfile) bool {
				if !withDocument {
					return request.Document == nil && request.UserID == "u1" && request.PrivacyConsent
				}
				return request.Document != nil &&
					request.Document.ContentType == "image/png" &&
					request.Document.FileName == "id-card.png"
			})).Return(&responses.Patient{ID: "p1", UserID: "u1"}, nil).Once()

			body, contentType := registrationMultipart(t, view.Token, withDocument)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/forms/registration/u1", body)
			req.Header.Set(constvars.HeaderContentType, contentType)

			rr := env.do(req)

			require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
			var envelope submitEnvelope
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
			assert.Equal(t, "/patients/u1/new-appointment", envelope.Data.RedirectTo)
			env.patients.AssertExpectations(t)
		}
	})

	t.Run("a token issued for another user is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		token, err := env.tokens.Issue(contracts.FormClaims{Kind: constvars.FormKindRegistration, UserID: "someone-else"})
		require.NoError(t, err)

		body, contentType := registrationMultipart(t, token, false)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/forms/registration/u1", body)
		req.Header.Set(constvars.HeaderContentType, contentType)

		rr := env.do(req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		env.patients.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
	})
}

func registrationMultipart(t *testing.T, token string, withDocument bool) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		constvars.FormFieldToken: token,
		"name":                   "Jane Doe",
		"email":                  "jane@example.com",
		"phone":                  "+14155552671",
		"birthDate":              "1990-04-12",
		"gender":                 "Female",
		"address":                "14th Street, New York",
		"occupation":             "Engineer",
		"emergencyContactName":   "John Doe",
		"emergencyContactNumber": "+14155552672",
		"primaryPhysician":       "John Green",
		"insuranceProvider":      "BlueCross",
		"insurancePolicyNumber":  "ABC123456789",
		"treatmentConsent":       "on",
		"disclosureConsent":      "on",
		"privacyConsent":         "true",
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if withDocument {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="identificationDocument"; filename="id-card.png"`}
		header["Content-Type"] = []string{"image/png"}
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestAppointmentRoutes(t *testing.T) {
	stored := &responses.Appointment{
		ID:               "a1",
		UserID:           "u1",
		PatientID:        "p1",
		PrimaryPhysician: "Jane Powell",
		Schedule:         time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC),
		Reason:           "Follow-up",
		Status:           models.AppointmentStatusPending.String(),
	}

	t.Run("unknown mode is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/forms/appointment?mode=reschedule&userId=u1", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("create needs a patient", func(t *testing.T) {
		env := newTestEnv(t)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/forms/appointment?mode=create&userId=u1", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("create redirects to success and closes the modal", func(t *testing.T) {
		env := newTestEnv(t)
		view := env.getView(t, "/api/v1/forms/appointment?mode=create&userId=u1&patientId=p1")
		assert.Equal(t, "Create Appointment", view.Submit.Label)

		env.appointments.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(request *requests.CreateAppointment) bool {
			return request.UserID == "u1" && request.PatientID == "p1" && request.Status == models.AppointmentStatusPending
		})).Return(&responses.Appointment{ID: "abc123"}, nil).Once()

		rr := env.do(jsonRequest(t, "/api/v1/forms/appointment", view.Token, map[string]string{
			"primaryPhysician": "Jane Powell",
			"schedule":         "2026-11-02T09:30:00Z",
			"reason":           "Annual check-up",
		}))

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var envelope submitEnvelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.Equal(t, "/patients/u1/new-appointment/success?appointmentId=abc123", envelope.Data.RedirectTo)
		require.NotNil(t, envelope.Data.ModalOpen)
		assert.False(t, *envelope.Data.ModalOpen)
		assert.True(t, envelope.Data.ResetFields)
	})

	t.Run("cancel closes the modal without navigating", func(t *testing.T) {
		env := newTestEnv(t)
		env.appointments.On("FindByID", mock.Anything, &requests.FindAppointment{UserID: "u1", AppointmentID: "a1"}).Return(stored, nil).Once()
		view := env.getView(t, "/api/v1/forms/appointment?mode=cancel&userId=u1&appointmentId=a1")
		assert.Equal(t, []string{"cancellationReason"}, view.FieldNames())
		assert.Equal(t, forms.ButtonVariantDanger, view.Submit.Variant)

		env.appointments.On("UpdateAppointment", mock.Anything, mock.MatchedBy(func(request *requests.UpdateAppointment) bool {
			return request.AppointmentID == "a1" &&
				request.Type == constvars.AppointmentModeCancel &&
				request.Update.PrimaryPhysician == nil &&
				request.Update.Status == models.AppointmentStatusCancelled
		})).Return(&responses.Appointment{ID: "a1", Status: "cancelled"}, nil).Once()

		rr := env.do(jsonRequest(t, "/api/v1/forms/appointment", view.Token, map[string]string{
			"cancellationReason": "Feeling better",
		}))

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var envelope submitEnvelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.Empty(t, envelope.Data.RedirectTo)
		require.NotNil(t, envelope.Data.ModalOpen)
		assert.False(t, *envelope.Data.ModalOpen)
		env.appointments.AssertExpectations(t)
	})

	t.Run("schedule view is pre-filled from the stored appointment", func(t *testing.T) {
		env := newTestEnv(t)
		env.appointments.On("FindByID", mock.Anything, mock.Anything).Return(stored, nil).Once()

		view := env.getView(t, "/api/v1/forms/appointment?mode=schedule&userId=u1&appointmentId=a1")

		assert.Equal(t, "Schedule Appointment", view.Submit.Label)
		assert.Equal(t, "Jane Powell", view.Sections[0].Fields[0].Value)
	})
}
