package forms

import "carepulse-service/internal/pkg/constvars"

type ButtonVariant string

const (
	ButtonVariantPrimary ButtonVariant = "primary"
	ButtonVariantDanger  ButtonVariant = "danger"
)

// SubmitButton is the state of a form's submit control. It owns no state:
// busy belongs to the form instance.
type SubmitButton struct {
	Label      string        `json:"label"`
	Busy       bool          `json:"busy"`
	Disabled   bool          `json:"disabled"`
	LoaderIcon string        `json:"loaderIcon,omitempty"`
	Variant    ButtonVariant `json:"variant"`
}

func NewSubmitButton(label string, busy bool, variant ButtonVariant) SubmitButton {
	if variant == "" {
		variant = ButtonVariantPrimary
	}
	button := SubmitButton{
		Label:    label,
		Busy:     busy,
		Disabled: busy,
		Variant:  variant,
	}
	if busy {
		button.LoaderIcon = constvars.LoaderIconSrc
	}
	return button
}

// Accepts reports whether the control takes a submit right now.
func (b SubmitButton) Accepts() bool {
	return !b.Busy && !b.Disabled
}
