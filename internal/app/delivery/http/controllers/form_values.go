package controllers

import (
	"carepulse-service/internal/app/forms"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/exceptions"
	"carepulse-service/internal/pkg/utils"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// isJSONRequest reports whether the body is JSON. Anything else is read as
// an HTML form post.
func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(constvars.HeaderContentType))
	return err == nil && mediaType == constvars.MIMEApplicationJSON
}

func parsePostForm(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, exceptions.ErrCannotParseMultipartForm(err)
	}
	return r.PostForm, nil
}

func formBool(values url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(key))) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

func decodeIntakeValues(r *http.Request) (forms.IntakeSchema, error) {
	var values forms.IntakeSchema
	if isJSONRequest(r) {
		err := utils.DecodeJSONBody(r, &values)
		return values, err
	}

	form, err := parsePostForm(r)
	if err != nil {
		return values, err
	}
	values.Name = form.Get("name")
	values.Email = form.Get("email")
	values.Phone = form.Get("phone")
	return values, nil
}

func decodeAppointmentValues(r *http.Request) (forms.AppointmentValues, error) {
	var values forms.AppointmentValues
	if isJSONRequest(r) {
		err := utils.DecodeJSONBody(r, &values)
		return values, err
	}

	form, err := parsePostForm(r)
	if err != nil {
		return values, err
	}
	values.PrimaryPhysician = form.Get("primaryPhysician")
	values.Schedule = form.Get("schedule")
	values.Reason = form.Get("reason")
	values.Note = form.Get("note")
	values.CancellationReason = form.Get("cancellationReason")
	return values, nil
}

// registrationValuesFromForm reads an already parsed multipart form.
func registrationValuesFromForm(form url.Values) forms.RegistrationSchema {
	return forms.RegistrationSchema{
		Name:                   form.Get("name"),
		Email:                  form.Get("email"),
		Phone:                  form.Get("phone"),
		BirthDate:              form.Get("birthDate"),
		Gender:                 form.Get("gender"),
		Address:                form.Get("address"),
		Occupation:             form.Get("occupation"),
		EmergencyContactName:   form.Get("emergencyContactName"),
		EmergencyContactNumber: form.Get("emergencyContactNumber"),
		PrimaryPhysician:       form.Get("primaryPhysician"),
		InsuranceProvider:      form.Get("insuranceProvider"),
		InsurancePolicyNumber:  form.Get("insurancePolicyNumber"),
		Allergies:              form.Get("allergies"),
		CurrentMedication:      form.Get("currentMedication"),
		FamilyMedicalHistory:   form.Get("familyMedicalHistory"),
		PastMedicalHistory:     form.Get("pastMedicalHistory"),
		IdentificationType:     form.Get("identificationType"),
		IdentificationNumber:   form.Get("identificationNumber"),
		TreatmentConsent:       formBool(form, "treatmentConsent"),
		DisclosureConsent:      formBool(form, "disclosureConsent"),
		PrivacyConsent:         formBool(form, "privacyConsent"),
	}
}
