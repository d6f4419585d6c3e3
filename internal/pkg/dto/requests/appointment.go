package requests

import (
	"carepulse-service/internal/app/models"
	"time"
)

type CreateAppointment struct {
	UserID           string
	PatientID        string
	PrimaryPhysician string
	Schedule         time.Time
	Reason           string
	Note             string
	Status           models.AppointmentStatus
}

// AppointmentUpdate holds the fields to $set on an appointment. Nil fields
// are left untouched.
type AppointmentUpdate struct {
	PrimaryPhysician   *string
	Schedule           *time.Time
	Reason             *string
	Note               *string
	Status             models.AppointmentStatus
	CancellationReason *string
}

type UpdateAppointment struct {
	UserID        string
	AppointmentID string
	Update        AppointmentUpdate
	// Type is the appointment mode that produced the update, used to pick
	// the notification sent to the patient.
	Type string
}

type FindAppointment struct {
	UserID        string
	AppointmentID string
}
