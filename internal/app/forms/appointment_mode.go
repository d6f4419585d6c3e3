package forms

import (
	"carepulse-service/internal/app/models"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/exceptions"
	"carepulse-service/internal/pkg/utils"
	"errors"
	"time"
)

const scheduleWidgetDateFormat = "MM/dd/yyyy h:mm aa"

// AppointmentMode selects the field set, schema, status and label of an
// appointment form instance. The set of modes is closed: CreateMode,
// ScheduleMode and CancelMode.
type AppointmentMode interface {
	Name() string
	ButtonLabel() string
	Status() models.AppointmentStatus
	Variant() ButtonVariant
	Fields(values AppointmentValues) []Field
	appointmentMode()
}

type CreateMode struct{}

type ScheduleMode struct{}

type CancelMode struct{}

func (CreateMode) Name() string                     { return constvars.AppointmentModeCreate }
func (CreateMode) ButtonLabel() string              { return constvars.ButtonLabelCreateAppointment }
func (CreateMode) Status() models.AppointmentStatus { return models.AppointmentStatusPending }
func (CreateMode) Variant() ButtonVariant           { return ButtonVariantPrimary }
func (CreateMode) appointmentMode()                 {}

func (CreateMode) Fields(values AppointmentValues) []Field {
	return bookingFields(values)
}

func (ScheduleMode) Name() string                     { return constvars.AppointmentModeSchedule }
func (ScheduleMode) ButtonLabel() string              { return constvars.ButtonLabelScheduleAppointment }
func (ScheduleMode) Status() models.AppointmentStatus { return models.AppointmentStatusScheduled }
func (ScheduleMode) Variant() ButtonVariant           { return ButtonVariantPrimary }
func (ScheduleMode) appointmentMode()                 {}

func (ScheduleMode) Fields(values AppointmentValues) []Field {
	return bookingFields(values)
}

func (CancelMode) Name() string                     { return constvars.AppointmentModeCancel }
func (CancelMode) ButtonLabel() string              { return constvars.ButtonLabelCancelAppointment }
func (CancelMode) Status() models.AppointmentStatus { return models.AppointmentStatusCancelled }
func (CancelMode) Variant() ButtonVariant           { return ButtonVariantDanger }
func (CancelMode) appointmentMode()                 {}

func (CancelMode) Fields(values AppointmentValues) []Field {
	return []Field{
		{Name: "cancellationReason", Type: FieldTypeTextarea, Label: "Reason for cancellation", Placeholder: "Enter reason for cancellation", Required: true, Value: values.CancellationReason},
	}
}

func bookingFields(values AppointmentValues) []Field {
	return []Field{
		{Name: "primaryPhysician", Type: FieldTypeSelect, Label: "Doctor", Placeholder: "Select a doctor", Required: true, Options: physicianOptions(), Value: values.PrimaryPhysician},
		{Name: "reason", Type: FieldTypeTextarea, Label: "Reason for appointment", Placeholder: "Annual monthly check-up", Required: true, Value: values.Reason},
		{Name: "note", Type: FieldTypeTextarea, Label: "Notes", Placeholder: "Enter notes", Value: values.Note},
		{Name: "schedule", Type: FieldTypeDatePicker, Label: "Expected appointment date", Placeholder: "Select your appointment date", Required: true, ShowTimeSelect: true, DateFormat: scheduleWidgetDateFormat, Value: values.Schedule},
	}
}

// ParseAppointmentMode is the only way to get a mode from a string.
func ParseAppointmentMode(mode string) (AppointmentMode, error) {
	switch mode {
	case constvars.AppointmentModeCreate:
		return CreateMode{}, nil
	case constvars.AppointmentModeSchedule:
		return ScheduleMode{}, nil
	case constvars.AppointmentModeCancel:
		return CancelMode{}, nil
	}
	return nil, exceptions.ErrUnknownAppointmentMode(nil, mode)
}

// AppointmentValues are the raw posted values of an appointment form. Which
// of them are read depends on the mode.
type AppointmentValues struct {
	PrimaryPhysician   string `json:"primaryPhysician"`
	Schedule           string `json:"schedule"`
	Reason             string `json:"reason"`
	Note               string `json:"note"`
	CancellationReason string `json:"cancellationReason"`
}

// AppointmentSchema is implemented by the validated shape of each mode.
type AppointmentSchema interface {
	appointmentSchema()
}

type CreateAppointmentSchema struct {
	PrimaryPhysician string    `json:"primaryPhysician" validate:"required,min=2"`
	Schedule         time.Time `json:"schedule" validate:"required"`
	Reason           string    `json:"reason" validate:"required,min=2,max=500"`
	Note             string    `json:"note" validate:"max=500"`
}

type ScheduleAppointmentSchema struct {
	PrimaryPhysician string    `json:"primaryPhysician" validate:"required,min=2"`
	Schedule         time.Time `json:"schedule" validate:"required"`
	Reason           string    `json:"reason" validate:"required,min=2,max=500"`
	Note             string    `json:"note" validate:"max=500"`
}

type CancelAppointmentSchema struct {
	CancellationReason string `json:"cancellationReason" validate:"required,min=2,max=500"`
}

func (CreateAppointmentSchema) appointmentSchema()   {}
func (ScheduleAppointmentSchema) appointmentSchema() {}
func (CancelAppointmentSchema) appointmentSchema()   {}

// SchemaFor builds the schema of mode from the posted values and validates
// it.
func SchemaFor(mode AppointmentMode, values AppointmentValues) (AppointmentSchema, error) {
	var schema AppointmentSchema
	switch mode.(type) {
	case CreateMode:
		schedule, err := parseOptionalSchedule(values.Schedule)
		if err != nil {
			return nil, err
		}
		schema = CreateAppointmentSchema{
			PrimaryPhysician: values.PrimaryPhysician,
			Schedule:         schedule,
			Reason:           values.Reason,
			Note:             values.Note,
		}
	case ScheduleMode:
		schedule, err := parseOptionalSchedule(values.Schedule)
		if err != nil {
			return nil, err
		}
		schema = ScheduleAppointmentSchema{
			PrimaryPhysician: values.PrimaryPhysician,
			Schedule:         schedule,
			Reason:           values.Reason,
			Note:             values.Note,
		}
	case CancelMode:
		schema = CancelAppointmentSchema{
			CancellationReason: values.CancellationReason,
		}
	default:
		return nil, exceptions.ErrUnknownAppointmentMode(errors.New("mode has no schema"), "")
	}

	if err := utils.ValidateStruct(schema); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return schema, nil
}

// parseOptionalSchedule leaves an empty schedule as the zero time so the
// required rule reports it.
func parseOptionalSchedule(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	schedule, err := utils.ParseScheduleTime(value)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseTime(err, "schedule")
	}
	return schedule, nil
}
