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

type RegistrationSchema struct {
	Name                   string `json:"name" validate:"required,min=2,max=50"`
	Email                  string `json:"email" validate:"required,email"`
	Phone                  string `json:"phone" validate:"required,phone"`
	BirthDate              string `json:"birthDate" validate:"required"`
	Gender                 string `json:"gender" validate:"required,oneof=Male Female Other"`
	Address                string `json:"address" validate:"required,min=5,max=500"`
	Occupation             string `json:"occupation" validate:"required,min=2,max=500"`
	EmergencyContactName   string `json:"emergencyContactName" validate:"required,min=2,max=50"`
	EmergencyContactNumber string `json:"emergencyContactNumber" validate:"required,phone"`
	PrimaryPhysician       string `json:"primaryPhysician" validate:"required,min=2"`
	InsuranceProvider      string `json:"insuranceProvider" validate:"required,min=2,max=50"`
	InsurancePolicyNumber  string `json:"insurancePolicyNumber" validate:"required,min=2,max=50"`
	Allergies              string `json:"allergies"`
	CurrentMedication      string `json:"currentMedication"`
	FamilyMedicalHistory   string `json:"familyMedicalHistory"`
	PastMedicalHistory     string `json:"pastMedicalHistory"`
	IdentificationType     string `json:"identificationType" validate:"omitempty,identification_type"`
	IdentificationNumber   string `json:"identificationNumber"`
	TreatmentConsent       bool   `json:"treatmentConsent" validate:"eq=true"`
	DisclosureConsent      bool   `json:"disclosureConsent" validate:"eq=true"`
	PrivacyConsent         bool   `json:"privacyConsent" validate:"eq=true"`
}

// RegistrationTarget names the identity a registration form was issued for.
type RegistrationTarget struct {
	InstanceID string
	UserID     string
}

type RegistrationForm struct {
	PatientUsecase contracts.PatientUsecase
	Guard          contracts.SubmissionGuard
	Log            *zap.Logger
}

func NewRegistrationForm(patientUsecase contracts.PatientUsecase, guard contracts.SubmissionGuard, logger *zap.Logger) *RegistrationForm {
	return &RegistrationForm{
		PatientUsecase: patientUsecase,
		Guard:          guard,
		Log:            logger,
	}
}

// DefaultRegistrationValues pre-fills the identity fields collected by the
// intake form.
func DefaultRegistrationValues(identity *responses.Identity) RegistrationSchema {
	values := RegistrationSchema{Gender: "Male"}
	if identity != nil {
		values.Name = identity.Name
		values.Email = identity.Email
		values.Phone = identity.Phone
	}
	return values
}

func (f *RegistrationForm) View(token string, busy bool, values RegistrationSchema) View {
	return View{
		Kind:        constvars.FormKindRegistration,
		Title:       "Welcome 👋",
		Description: "Let us know more about yourself.",
		Token:       token,
		Enctype:     constvars.MIMEMultipartForm,
		Sections: []Section{
			{
				Title: "Personal Information",
				Fields: []Field{
					{Name: "name", Type: FieldTypeInput, Label: "Full name", Placeholder: "John Doe", IconSrc: "/assets/icons/user.svg", IconAlt: "user", Required: true, Value: values.Name},
					{Name: "email", Type: FieldTypeInput, Label: "Email", Placeholder: "johndoe@example.com", IconSrc: "/assets/icons/email.svg", IconAlt: "email", Required: true, Value: values.Email},
					{Name: "phone", Type: FieldTypePhoneInput, Label: "Phone number", Placeholder: "(555) 123-4567", Required: true, Value: values.Phone},
					{Name: "birthDate", Type: FieldTypeDatePicker, Label: "Date of birth", Required: true, DateFormat: constvars.BirthDateLayout, Value: values.BirthDate},
					{Name: "gender", Type: FieldTypeRadio, Label: "Gender", Required: true, Options: stringOptions(constvars.GenderOptions), Value: values.Gender},
					{Name: "address", Type: FieldTypeInput, Label: "Address", Placeholder: "14th Street, New York", Required: true, Value: values.Address},
					{Name: "occupation", Type: FieldTypeInput, Label: "Occupation", Placeholder: "Software Engineer", Required: true, Value: values.Occupation},
					{Name: "emergencyContactName", Type: FieldTypeInput, Label: "Emergency contact name", Placeholder: "Guardian's name", Required: true, Value: values.EmergencyContactName},
					{Name: "emergencyContactNumber", Type: FieldTypePhoneInput, Label: "Emergency contact number", Placeholder: "(555) 123-4567", Required: true, Value: values.EmergencyContactNumber},
				},
			},
			{
				Title: "Medical Information",
				Fields: []Field{
					{Name: "primaryPhysician", Type: FieldTypeSelect, Label: "Primary physician", Placeholder: "Select a physician", Required: true, Options: physicianOptions(), Value: values.PrimaryPhysician},
					{Name: "insuranceProvider", Type: FieldTypeInput, Label: "Insurance provider", Placeholder: "BlueCross BlueShield", Required: true, Value: values.InsuranceProvider},
					{Name: "insurancePolicyNumber", Type: FieldTypeInput, Label: "Insurance policy number", Placeholder: "ABC123456789", Required: true, Value: values.InsurancePolicyNumber},
					{Name: "allergies", Type: FieldTypeTextarea, Label: "Allergies (if any)", Placeholder: "Peanuts, Penicillin, Pollen", Value: values.Allergies},
					{Name: "currentMedication", Type: FieldTypeTextarea, Label: "Current medication (if any)", Placeholder: "Ibuprofen 200mg, Paracetamol 500mg", Value: values.CurrentMedication},
					{Name: "familyMedicalHistory", Type: FieldTypeTextarea, Label: "Family medical history", Placeholder: "Mother had brain cancer, Father had heart disease", Value: values.FamilyMedicalHistory},
					{Name: "pastMedicalHistory", Type: FieldTypeTextarea, Label: "Past medical history", Placeholder: "Appendectomy, Tonsillectomy", Value: values.PastMedicalHistory},
				},
			},
			{
				Title: "Identification and Verification",
				Fields: []Field{
					{Name: "identificationType", Type: FieldTypeSelect, Label: "Identification type", Placeholder: "Select an identification type", Options: stringOptions(constvars.IdentificationTypes), Value: values.IdentificationType},
					{Name: "identificationNumber", Type: FieldTypeInput, Label: "Identification number", Placeholder: "123456789", Value: values.IdentificationNumber},
					{Name: constvars.FormFieldIdentificationDocument, Type: FieldTypeFile, Label: "Scanned copy of identification document"},
				},
			},
			{
				Title: "Consent and Privacy",
				Fields: []Field{
					{Name: "treatmentConsent", Type: FieldTypeCheckbox, Label: "I consent to treatment", Required: true, Value: "true", Checked: values.TreatmentConsent},
					{Name: "disclosureConsent", Type: FieldTypeCheckbox, Label: "I consent to disclosure of information", Required: true, Value: "true", Checked: values.DisclosureConsent},
					{Name: "privacyConsent", Type: FieldTypeCheckbox, Label: "I consent to privacy policy", Required: true, Value: "true", Checked: values.PrivacyConsent},
				},
			},
		},
		Submit: NewSubmitButton(constvars.ButtonLabelGetStarted, busy, ButtonVariantPrimary),
	}
}

// Submit creates the patient profile. document is nil when no file was
// attached.
func (f *RegistrationForm) Submit(ctx context.Context, target RegistrationTarget, values RegistrationSchema, document *requests.DocumentPayload, effects SubmitEffects) (*responses.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	f.Log.Info("RegistrationForm.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFormInstanceIDKey, target.InstanceID),
		zap.String(constvars.LoggingUserIDKey, target.UserID),
		zap.Bool("has_document", document != nil),
	)

	release, err := f.Guard.Acquire(ctx, target.InstanceID)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := utils.ValidateStruct(values); err != nil {
		f.Log.Info("RegistrationForm.Submit rejected invalid input",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	birthDate, err := utils.ParseBirthDate(values.BirthDate)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err, "birthDate")
	}

	patient, err := f.PatientUsecase.CreateProfile(ctx, &requests.CreateProfile{
		UserID:                 target.UserID,
		Name:                   values.Name,
		Email:                  values.Email,
		Phone:                  values.Phone,
		BirthDate:              birthDate,
		Gender:                 values.Gender,
		Address:                values.Address,
		Occupation:             values.Occupation,
		EmergencyContactName:   values.EmergencyContactName,
		EmergencyContactNumber: values.EmergencyContactNumber,
		PrimaryPhysician:       values.PrimaryPhysician,
		InsuranceProvider:      values.InsuranceProvider,
		InsurancePolicyNumber:  values.InsurancePolicyNumber,
		Allergies:              values.Allergies,
		CurrentMedication:      values.CurrentMedication,
		FamilyMedicalHistory:   values.FamilyMedicalHistory,
		PastMedicalHistory:     values.PastMedicalHistory,
		IdentificationType:     values.IdentificationType,
		IdentificationNumber:   values.IdentificationNumber,
		TreatmentConsent:       values.TreatmentConsent,
		DisclosureConsent:      values.DisclosureConsent,
		PrivacyConsent:         values.PrivacyConsent,
		Document:               document,
	})
	if err != nil {
		f.Log.Error("RegistrationForm.Submit error calling PatientUsecase.CreateProfile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	effects.NavigateTo(fmt.Sprintf(constvars.PathNewAppointmentFormat, target.UserID))

	utils.LogFormEvent(f.Log, "registration_submitted", requestID,
		zap.String(constvars.LoggingFormInstanceIDKey, target.InstanceID),
		zap.String(constvars.LoggingUserIDKey, target.UserID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)
	return patient, nil
}
