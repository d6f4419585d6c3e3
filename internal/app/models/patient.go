package models

import "time"

type Patient struct {
	ID                       string    `bson:"_id,omitempty"`
	UserID                   string    `bson:"userId"`
	Name                     string    `bson:"name"`
	Email                    string    `bson:"email"`
	Phone                    string    `bson:"phone"`
	BirthDate                time.Time `bson:"birthDate"`
	Gender                   string    `bson:"gender"`
	Address                  string    `bson:"address"`
	Occupation               string    `bson:"occupation"`
	EmergencyContactName     string    `bson:"emergencyContactName"`
	EmergencyContactNumber   string    `bson:"emergencyContactNumber"`
	PrimaryPhysician         string    `bson:"primaryPhysician"`
	InsuranceProvider        string    `bson:"insuranceProvider"`
	InsurancePolicyNumber    string    `bson:"insurancePolicyNumber"`
	Allergies                string    `bson:"allergies,omitempty"`
	CurrentMedication        string    `bson:"currentMedication,omitempty"`
	FamilyMedicalHistory     string    `bson:"familyMedicalHistory,omitempty"`
	PastMedicalHistory       string    `bson:"pastMedicalHistory,omitempty"`
	IdentificationType       string    `bson:"identificationType,omitempty"`
	IdentificationNumber     string    `bson:"identificationNumber,omitempty"`
	IdentificationDocumentID string    `bson:"identificationDocumentId,omitempty"`
	TreatmentConsent         bool      `bson:"treatmentConsent"`
	DisclosureConsent        bool      `bson:"disclosureConsent"`
	PrivacyConsent           bool      `bson:"privacyConsent"`
	TimeModel                `bson:",inline"`
}
