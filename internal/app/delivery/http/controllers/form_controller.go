package controllers

import (
	"bytes"
	"carepulse-service/internal/app/config"
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/app/forms"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"carepulse-service/internal/pkg/exceptions"
	"carepulse-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FormController struct {
	Log                *zap.Logger
	InternalConfig     *config.InternalConfig
	FormTokenService   contracts.FormTokenService
	SubmissionGuard    contracts.SubmissionGuard
	IdentityUsecase    contracts.IdentityUsecase
	AppointmentUsecase contracts.AppointmentUsecase
	IntakeForm         *forms.IntakeForm
	RegistrationForm   *forms.RegistrationForm
	AppointmentForm    *forms.AppointmentForm
	Renderer           *forms.Renderer
}

var (
	formControllerInstance *FormController
	onceFormController     sync.Once
)

func NewFormController(
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	formTokenService contracts.FormTokenService,
	submissionGuard contracts.SubmissionGuard,
	identityUsecase contracts.IdentityUsecase,
	patientUsecase contracts.PatientUsecase,
	appointmentUsecase contracts.AppointmentUsecase,
	renderer *forms.Renderer,
) *FormController {
	onceFormController.Do(func() {
		instance := &FormController{
			Log:                logger,
			InternalConfig:     internalConfig,
			FormTokenService:   formTokenService,
			SubmissionGuard:    submissionGuard,
			IdentityUsecase:    identityUsecase,
			AppointmentUsecase: appointmentUsecase,
			IntakeForm:         forms.NewIntakeForm(identityUsecase, submissionGuard, logger),
			RegistrationForm:   forms.NewRegistrationForm(patientUsecase, submissionGuard, logger),
			AppointmentForm:    forms.NewAppointmentForm(appointmentUsecase, submissionGuard, logger),
			Renderer:           renderer,
		}
		formControllerInstance = instance
	})
	return formControllerInstance
}

func (ctrl *FormController) GetIntakeForm(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "GetIntakeForm")
	if !ok {
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	token, busy, err := ctrl.resolveToken(ctx, r, contracts.FormClaims{Kind: constvars.FormKindIntake})
	if err != nil {
		ctrl.writeError(ctx, w, err)
		return
	}

	view := ctrl.IntakeForm.View(token, busy, forms.IntakeSchema{})
	view.Action = r.URL.Path

	ctrl.Log.Info("FormController.GetIntakeForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("busy", busy),
	)
	ctrl.writeView(w, r, constvars.StatusOK, view)
}

func (ctrl *FormController) SubmitIntakeForm(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "SubmitIntakeForm")
	if !ok {
		return
	}

	values, err := decodeIntakeValues(r)
	if err != nil {
		ctrl.Log.Error("FormController.SubmitIntakeForm error parsing body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	token, claims, err := ctrl.verifyToken(r, constvars.FormKindIntake)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	outcome := forms.NewOutcome()
	identity, err := ctrl.IntakeForm.Submit(ctx, claims.InstanceID(), values, outcome)
	if err != nil {
		view := ctrl.IntakeForm.View(token, false, values)
		view.Action = r.URL.Path
		ctrl.writeSubmitError(ctx, w, r, err, view)
		return
	}

	ctrl.Log.Info("FormController.SubmitIntakeForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, identity.ID),
	)
	ctrl.writeSubmitResult(w, r, constvars.StatusCreated, constvars.CreateIdentitySuccessMessage, outcome, identity)
}

func (ctrl *FormController) GetRegistrationForm(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "GetRegistrationForm")
	if !ok {
		return
	}

	userID := chi.URLParam(r, constvars.URLParamUserID)
	if userID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamUserID))
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	identity, err := ctrl.IdentityUsecase.FindByID(ctx, userID)
	if err != nil {
		ctrl.Log.Error("FormController.GetRegistrationForm error calling IdentityUsecase.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		ctrl.writeError(ctx, w, err)
		return
	}

	token, busy, err := ctrl.resolveToken(ctx, r, contracts.FormClaims{Kind: constvars.FormKindRegistration, UserID: userID})
	if err != nil {
		ctrl.writeError(ctx, w, err)
		return
	}

	view := ctrl.RegistrationForm.View(token, busy, forms.DefaultRegistrationValues(identity))
	view.Action = r.URL.Path

	ctrl.Log.Info("FormController.GetRegistrationForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	ctrl.writeView(w, r, constvars.StatusOK, view)
}

func (ctrl *FormController) SubmitRegistrationForm(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "SubmitRegistrationForm")
	if !ok {
		return
	}

	userID := chi.URLParam(r, constvars.URLParamUserID)
	maxUploadSizeInMB := ctrl.InternalConfig.Minio.IdentificationDocumentMaxUploadSizeInMB

	if err := r.ParseMultipartForm(int64(maxUploadSizeInMB+1) << 20); err != nil {
		ctrl.Log.Error("FormController.SubmitRegistrationForm error parsing multipart form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	token, claims, err := ctrl.verifyToken(r, constvars.FormKindRegistration)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	if claims.UserID != userID {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrFormKindMismatch(nil, claims.UserID, userID))
		return
	}

	values := registrationValuesFromForm(r.PostForm)
	document, err := utils.BuildDocumentPayload(r, constvars.FormFieldIdentificationDocument, maxUploadSizeInMB)
	if err != nil {
		ctrl.Log.Error("FormController.SubmitRegistrationForm error reading identification document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	outcome := forms.NewOutcome()
	target := forms.RegistrationTarget{InstanceID: claims.InstanceID(), UserID: userID}
	patient, err := ctrl.RegistrationForm.Submit(ctx, target, values, document, outcome)
	if err != nil {
		view := ctrl.RegistrationForm.View(token, false, values)
		view.Action = r.URL.Path
		ctrl.writeSubmitError(ctx, w, r, err, view)
		return
	}

	ctrl.Log.Info("FormController.SubmitRegistrationForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)
	ctrl.writeSubmitResult(w, r, constvars.StatusCreated, constvars.CreateProfileSuccessMessage, outcome, patient)
}

func (ctrl *FormController) GetAppointmentForm(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "GetAppointmentForm")
	if !ok {
		return
	}

	query := r.URL.Query()
	mode, err := forms.ParseAppointmentMode(query.Get(constvars.URLQueryParamMode))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	claims := contracts.FormClaims{
		Kind:          constvars.FormKindAppointment,
		Mode:          mode.Name(),
		UserID:        query.Get(constvars.URLQueryParamUserID),
		PatientID:     query.Get(constvars.URLQueryParamPatientID),
		AppointmentID: query.Get(constvars.URLQueryParamAppointmentID),
	}
	if param := missingAppointmentParam(mode, claims); param != "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, param))
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	var stored *responses.Appointment
	if _, isCreate := mode.(forms.CreateMode); !isCreate {
		stored, err = ctrl.AppointmentUsecase.FindByID(ctx, &requests.FindAppointment{
			UserID:        claims.UserID,
			AppointmentID: claims.AppointmentID,
		})
		if err != nil {
			ctrl.Log.Error("FormController.GetAppointmentForm error calling AppointmentUsecase.FindByID",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, claims.AppointmentID),
				zap.Error(err),
			)
			ctrl.writeError(ctx, w, err)
			return
		}
		claims.PatientID = stored.PatientID
	}

	token, busy, err := ctrl.resolveToken(ctx, r, claims)
	if err != nil {
		ctrl.writeError(ctx, w, err)
		return
	}

	view := ctrl.AppointmentForm.View(token, busy, mode, forms.DefaultAppointmentValues(stored, time.Now()))
	view.Action = r.URL.Path

	ctrl.Log.Info("FormController.GetAppointmentForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFormModeKey, mode.Name()),
		zap.String(constvars.LoggingUserIDKey, claims.UserID),
	)
	ctrl.writeView(w, r, constvars.StatusOK, view)
}

func (ctrl *FormController) SubmitAppointmentForm(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "SubmitAppointmentForm")
	if !ok {
		return
	}

	values, err := decodeAppointmentValues(r)
	if err != nil {
		ctrl.Log.Error("FormController.SubmitAppointmentForm error parsing body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	token, claims, err := ctrl.verifyToken(r, constvars.FormKindAppointment)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	mode, err := forms.ParseAppointmentMode(claims.Mode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	outcome := forms.NewOutcome()
	target := forms.AppointmentTarget{
		InstanceID:    claims.InstanceID(),
		UserID:        claims.UserID,
		PatientID:     claims.PatientID,
		AppointmentID: claims.AppointmentID,
		Mode:          mode,
	}
	appointment, err := ctrl.AppointmentForm.Submit(ctx, target, values, outcome)
	if err != nil {
		view := ctrl.AppointmentForm.View(token, false, mode, values)
		view.Action = r.URL.Path
		ctrl.writeSubmitError(ctx, w, r, err, view)
		return
	}

	ctrl.Log.Info("FormController.SubmitAppointmentForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFormModeKey, mode.Name()),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	status, message := constvars.StatusOK, constvars.ScheduleAppointmentSuccess
	switch mode.(type) {
	case forms.CreateMode:
		status, message = constvars.StatusCreated, constvars.CreateAppointmentSuccessMessage
	case forms.CancelMode:
		message = constvars.CancelAppointmentSuccess
	}
	ctrl.writeSubmitResult(w, r, status, message, outcome, appointment)
}

func missingAppointmentParam(mode forms.AppointmentMode, claims contracts.FormClaims) string {
	if claims.UserID == "" {
		return constvars.URLQueryParamUserID
	}
	if _, isCreate := mode.(forms.CreateMode); isCreate {
		if claims.PatientID == "" {
			return constvars.URLQueryParamPatientID
		}
		return ""
	}
	if claims.AppointmentID == "" {
		return constvars.URLQueryParamAppointmentID
	}
	return ""
}

func (ctrl *FormController) requestID(w http.ResponseWriter, r *http.Request, method string) (string, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("FormController." + method + " requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return "", false
	}
	ctrl.Log.Info("FormController."+method+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEndpointKey, r.URL.Path),
	)
	return requestID, true
}

func (ctrl *FormController) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = constvars.DefaultRequestTimeoutInSeconds * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

// resolveToken keeps the client's current form instance when it presents a
// token issued for the same form, so a reload sees the instance's busy
// state. Otherwise a new instance is issued.
func (ctrl *FormController) resolveToken(ctx context.Context, r *http.Request, want contracts.FormClaims) (string, bool, error) {
	if presented := r.Header.Get(constvars.HeaderXFormToken); presented != "" {
		claims, err := ctrl.FormTokenService.Verify(presented)
		if err == nil && sameForm(claims, &want) {
			busy, err := ctrl.SubmissionGuard.IsBusy(ctx, claims.InstanceID())
			if err != nil {
				return "", false, err
			}
			return presented, busy, nil
		}
	}

	token, err := ctrl.FormTokenService.Issue(want)
	if err != nil {
		return "", false, err
	}
	return token, false, nil
}

func sameForm(a, b *contracts.FormClaims) bool {
	return a.Kind == b.Kind &&
		a.Mode == b.Mode &&
		a.UserID == b.UserID &&
		a.PatientID == b.PatientID &&
		a.AppointmentID == b.AppointmentID
}

// verifyToken reads the form token from the header or, for HTML posts, the
// hidden form field.
func (ctrl *FormController) verifyToken(r *http.Request, kind string) (string, *contracts.FormClaims, error) {
	token := r.Header.Get(constvars.HeaderXFormToken)
	if token == "" && !isJSONRequest(r) {
		token = r.PostFormValue(constvars.FormFieldToken)
	}

	claims, err := ctrl.FormTokenService.Verify(token)
	if err != nil {
		return "", nil, err
	}
	if claims.Kind != kind {
		return "", nil, exceptions.ErrFormKindMismatch(nil, claims.Kind, kind)
	}
	return token, claims, nil
}

func (ctrl *FormController) writeView(w http.ResponseWriter, r *http.Request, status int, view forms.View) {
	if !utils.WantsHTML(r) {
		utils.BuildSuccessResponse(w, status, constvars.GetFormSuccessMessage, view)
		return
	}

	var page bytes.Buffer
	if err := ctrl.Renderer.Render(&page, view); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrRenderTemplate(err))
		return
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextHTMLCharsetUTF8)
	w.WriteHeader(status)
	w.Write(page.Bytes())
}

func (ctrl *FormController) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = exceptions.ErrServerDeadlineExceeded(err)
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}

// writeSubmitError re-renders an HTML form with its field errors. JSON
// clients get the error envelope.
func (ctrl *FormController) writeSubmitError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error, view forms.View) {
	var customErr *exceptions.CustomError
	if utils.WantsHTML(r) && errors.As(err, &customErr) && len(customErr.Fields) > 0 {
		ctrl.writeView(w, r, customErr.StatusCode, view.WithErrors(customErr.Fields))
		return
	}
	ctrl.writeError(ctx, w, err)
}

func (ctrl *FormController) writeSubmitResult(w http.ResponseWriter, r *http.Request, status int, message string, outcome *forms.Outcome, result interface{}) {
	if redirectTo := outcome.RedirectTo(); redirectTo != "" && utils.WantsHTML(r) {
		ctrl.Log.Debug("FormController redirecting browser",
			zap.String(constvars.LoggingRedirectToKey, redirectTo),
		)
		http.Redirect(w, r, ctrl.frontendURL(redirectTo), http.StatusSeeOther)
		return
	}
	utils.BuildSuccessResponse(w, status, message, outcome.Result(result))
}

func (ctrl *FormController) frontendURL(path string) string {
	if ctrl.InternalConfig.App.FrontendDomain == "" {
		return path
	}
	return fmt.Sprintf("%s%s", ctrl.InternalConfig.App.FrontendDomain, path)
}
