package models

import (
	"carepulse-service/internal/pkg/constvars"
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = constvars.AppointmentStatusPending
	AppointmentStatusScheduled AppointmentStatus = constvars.AppointmentStatusScheduled
	AppointmentStatusCancelled AppointmentStatus = constvars.AppointmentStatusCancelled
)

func (s AppointmentStatus) String() string {
	return string(s)
}

type Appointment struct {
	ID                 string            `bson:"_id,omitempty"`
	UserID             string            `bson:"userId"`
	PatientID          string            `bson:"patientId"`
	PrimaryPhysician   string            `bson:"primaryPhysician"`
	Schedule           time.Time         `bson:"schedule"`
	Reason             string            `bson:"reason"`
	Note               string            `bson:"note,omitempty"`
	Status             AppointmentStatus `bson:"status"`
	CancellationReason string            `bson:"cancellationReason,omitempty"`
	TimeModel          `bson:",inline"`
}
