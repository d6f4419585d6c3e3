package constvars

const (
	FormKindIntake       = "intake"
	FormKindRegistration = "registration"
	FormKindAppointment  = "appointment"
)

const (
	AppointmentModeCreate   = "create"
	AppointmentModeSchedule = "schedule"
	AppointmentModeCancel   = "cancel"
)

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCancelled = "cancelled"
)

const (
	ButtonLabelGetStarted          = "Get Started"
	ButtonLabelCreateAppointment   = "Create Appointment"
	ButtonLabelScheduleAppointment = "Schedule Appointment"
	ButtonLabelCancelAppointment   = "Cancel Appointment"
	LoaderIconSrc                  = "/assets/icons/loader.svg"
)

// Client-side destinations, formatted with the owner user id
const (
	PathRegisterFormat           = "/patients/%s/register"
	PathNewAppointmentFormat     = "/patients/%s/new-appointment"
	PathAppointmentSuccessFormat = "/patients/%s/new-appointment/success?appointmentId=%s"
)

const (
	DefaultPhoneRegion     = "US"
	ScheduleDateTimeLayout = "2006-01-02T15:04"
	BirthDateLayout        = "2006-01-02"
	NotificationDateLayout = "Jan 2, 2006 3:04 PM"
)

var GenderOptions = []string{"Male", "Female", "Other"}

var IdentificationTypes = []string{
	"Birth Certificate",
	"Driver's License",
	"Medical Insurance Card/Policy",
	"Military ID Card",
	"National Identity Card",
	"Passport",
	"Resident Alien Card (Green Card)",
	"Social Security Card",
	"State ID Card",
	"Student ID Card",
	"Voter ID Card",
}

type Doctor struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

var Doctors = []Doctor{
	{Name: "John Green", Image: "/assets/images/dr-green.png"},
	{Name: "Leila Cameron", Image: "/assets/images/dr-cameron.png"},
	{Name: "David Livingston", Image: "/assets/images/dr-livingston.png"},
	{Name: "Evan Peter", Image: "/assets/images/dr-peter.png"},
	{Name: "Jane Powell", Image: "/assets/images/dr-powell.png"},
	{Name: "Alex Ramirez", Image: "/assets/images/dr-remirez.png"},
	{Name: "Jasmine Lee", Image: "/assets/images/dr-lee.png"},
	{Name: "Alyana Cruz", Image: "/assets/images/dr-cruz.png"},
	{Name: "Hardik Sharma", Image: "/assets/images/dr-sharma.png"},
}

// Names of form fields that carry no schema value
const (
	FormFieldToken                  = "formToken"
	FormFieldIdentificationDocument = "identificationDocument"
)
