package requests

import "time"

// DocumentPayload is an uploaded file kept in memory together with the
// metadata the browser declared for it.
type DocumentPayload struct {
	Content     []byte
	ContentType string
	FileName    string
	Size        int64
}

type CreateProfile struct {
	UserID                 string
	Name                   string
	Email                  string
	Phone                  string
	BirthDate              time.Time
	Gender                 string
	Address                string
	Occupation             string
	EmergencyContactName   string
	EmergencyContactNumber string
	PrimaryPhysician       string
	InsuranceProvider      string
	InsurancePolicyNumber  string
	Allergies              string
	CurrentMedication      string
	FamilyMedicalHistory   string
	PastMedicalHistory     string
	IdentificationType     string
	IdentificationNumber   string
	TreatmentConsent       bool
	DisclosureConsent      bool
	PrivacyConsent         bool

	// Document is nil when no identification document was attached.
	Document *DocumentPayload
}
