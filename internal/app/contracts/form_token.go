package contracts

import "github.com/golang-jwt/jwt/v4"

type FormClaims struct {
	Kind          string `json:"kind"`
	Mode          string `json:"mode,omitempty"`
	UserID        string `json:"userId,omitempty"`
	PatientID     string `json:"patientId,omitempty"`
	AppointmentID string `json:"appointmentId,omitempty"`
	jwt.RegisteredClaims
}

// InstanceID identifies the mounted form the token was issued for.
func (c *FormClaims) InstanceID() string {
	return c.ID
}

type FormTokenService interface {
	Issue(claims FormClaims) (string, error)
	Verify(token string) (*FormClaims, error)
}
