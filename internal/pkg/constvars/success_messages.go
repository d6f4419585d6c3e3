package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	GetFormSuccessMessage           = "form retrieved successfully"
	CreateIdentitySuccessMessage    = "patient details saved successfully"
	CreateProfileSuccessMessage     = "patient registered successfully"
	CreateAppointmentSuccessMessage = "appointment requested successfully"
	ScheduleAppointmentSuccess      = "appointment scheduled successfully"
	CancelAppointmentSuccess        = "appointment cancelled successfully"
)
