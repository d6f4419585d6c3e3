package forms

import "carepulse-service/internal/pkg/constvars"

type FieldType string

const (
	FieldTypeInput      FieldType = "input"
	FieldTypeTextarea   FieldType = "textarea"
	FieldTypePhoneInput FieldType = "phoneInput"
	FieldTypeCheckbox   FieldType = "checkbox"
	FieldTypeDatePicker FieldType = "datePicker"
	FieldTypeSelect     FieldType = "select"
	FieldTypeRadio      FieldType = "radio"
	FieldTypeFile       FieldType = "file"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Image string `json:"image,omitempty"`
}

type Field struct {
	Name           string    `json:"name"`
	Type           FieldType `json:"type"`
	Label          string    `json:"label,omitempty"`
	Placeholder    string    `json:"placeholder,omitempty"`
	IconSrc        string    `json:"iconSrc,omitempty"`
	IconAlt        string    `json:"iconAlt,omitempty"`
	Required       bool      `json:"required"`
	Options        []Option  `json:"options,omitempty"`
	ShowTimeSelect bool      `json:"showTimeSelect,omitempty"`
	DateFormat     string    `json:"dateFormat,omitempty"`
	Value          string    `json:"value,omitempty"`
	Checked        bool      `json:"checked,omitempty"`
	Error          string    `json:"error,omitempty"`
}

type Section struct {
	Title  string  `json:"title,omitempty"`
	Fields []Field `json:"fields"`
}

// View is the descriptor of one issued form instance. It is served as JSON
// or rendered to HTML.
type View struct {
	Kind        string       `json:"kind"`
	Mode        string       `json:"mode,omitempty"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Token       string       `json:"token"`
	Action      string       `json:"action,omitempty"`
	Enctype     string       `json:"enctype"`
	Sections    []Section    `json:"sections"`
	Submit      SubmitButton `json:"submit"`
}

// WithErrors copies the view and attaches a message to each named field.
func (v View) WithErrors(fieldErrors map[string]string) View {
	if len(fieldErrors) == 0 {
		return v
	}
	sections := make([]Section, len(v.Sections))
	for i, section := range v.Sections {
		fields := make([]Field, len(section.Fields))
		for j, field := range section.Fields {
			field.Error = fieldErrors[field.Name]
			fields[j] = field
		}
		section.Fields = fields
		sections[i] = section
	}
	v.Sections = sections
	return v
}

// FieldNames lists every field of the view in render order.
func (v View) FieldNames() []string {
	var names []string
	for _, section := range v.Sections {
		for _, field := range section.Fields {
			names = append(names, field.Name)
		}
	}
	return names
}

func physicianOptions() []Option {
	options := make([]Option, 0, len(constvars.Doctors))
	for _, doctor := range constvars.Doctors {
		options = append(options, Option{Value: doctor.Name, Label: doctor.Name, Image: doctor.Image})
	}
	return options
}

func stringOptions(values []string) []Option {
	options := make([]Option, 0, len(values))
	for _, value := range values {
		options = append(options, Option{Value: value, Label: value})
	}
	return options
}
