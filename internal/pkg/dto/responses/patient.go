package responses

import "time"

type Patient struct {
	ID                        string    `json:"id"`
	UserID                    string    `json:"userId"`
	Name                      string    `json:"name"`
	Email                     string    `json:"email"`
	Phone                     string    `json:"phone"`
	BirthDate                 time.Time `json:"birthDate"`
	Gender                    string    `json:"gender"`
	PrimaryPhysician          string    `json:"primaryPhysician"`
	IdentificationType        string    `json:"identificationType,omitempty"`
	IdentificationDocumentID  string    `json:"identificationDocumentId,omitempty"`
	IdentificationDocumentURL string    `json:"identificationDocumentUrl,omitempty"`
	CreatedAt                 time.Time `json:"createdAt"`
}
