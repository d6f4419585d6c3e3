package constvars

const (
	URLParamUserID = "userId"
)

const (
	URLQueryParamMode          = "mode"
	URLQueryParamUserID        = "userId"
	URLQueryParamPatientID     = "patientId"
	URLQueryParamAppointmentID = "appointmentId"
)
