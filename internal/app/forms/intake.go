package forms

import (
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"carepulse-service/internal/pkg/exceptions"
	"carepulse-service/internal/pkg/utils"
	"context"
	"fmt"

	"go.uber.org/zap"
)

type IntakeSchema struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
}

type IntakeForm struct {
	IdentityUsecase contracts.IdentityUsecase
	Guard           contracts.SubmissionGuard
	Log             *zap.Logger
}

func NewIntakeForm(identityUsecase contracts.IdentityUsecase, guard contracts.SubmissionGuard, logger *zap.Logger) *IntakeForm {
	return &IntakeForm{
		IdentityUsecase: identityUsecase,
		Guard:           guard,
		Log:             logger,
	}
}

func (f *IntakeForm) View(token string, busy bool, values IntakeSchema) View {
	return View{
		Kind:        constvars.FormKindIntake,
		Title:       "Hi there 👋",
		Description: "Schedule your first appointment.",
		Token:       token,
		Enctype:     constvars.MIMEApplicationForm,
		Sections: []Section{{
			Fields: []Field{
				{Name: "name", Type: FieldTypeInput, Label: "Full name", Placeholder: "John Doe", IconSrc: "/assets/icons/user.svg", IconAlt: "user", Required: true, Value: values.Name},
				{Name: "email", Type: FieldTypeInput, Label: "Email", Placeholder: "johndoe@example.com", IconSrc: "/assets/icons/email.svg", IconAlt: "email", Required: true, Value: values.Email},
				{Name: "phone", Type: FieldTypePhoneInput, Label: "Phone number", Placeholder: "(555) 123-4567", Required: true, Value: values.Phone},
			},
		}},
		Submit: NewSubmitButton(constvars.ButtonLabelGetStarted, busy, ButtonVariantPrimary),
	}
}

// Submit creates the identity and sends the user on to registration.
func (f *IntakeForm) Submit(ctx context.Context, instanceID string, values IntakeSchema, effects SubmitEffects) (*responses.Identity, error) {
	requestID := utils.GetRequestID(ctx)
	f.Log.Info("IntakeForm.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFormInstanceIDKey, instanceID),
	)

	release, err := f.Guard.Acquire(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := utils.ValidateStruct(values); err != nil {
		f.Log.Info("IntakeForm.Submit rejected invalid input",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	identity, err := f.IdentityUsecase.CreateIdentity(ctx, &requests.CreateIdentity{
		Name:  values.Name,
		Email: values.Email,
		Phone: values.Phone,
	})
	if err != nil {
		f.Log.Error("IntakeForm.Submit error calling IdentityUsecase.CreateIdentity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	effects.NavigateTo(fmt.Sprintf(constvars.PathRegisterFormat, identity.ID))

	utils.LogFormEvent(f.Log, "intake_submitted", requestID,
		zap.String(constvars.LoggingFormInstanceIDKey, instanceID),
		zap.String(constvars.LoggingUserIDKey, identity.ID),
	)
	return identity, nil
}
