package forms

import "carepulse-service/internal/app/contracts"

// SubmitEffects are the client-side effects a successful submission may ask
// for.
type SubmitEffects interface {
	contracts.Navigator
	contracts.ModalController
	ResetFields()
}

// Outcome records the effects requested during a submission so they can be
// sent back to the client.
type Outcome struct {
	redirectTo  string
	modalOpen   *bool
	resetFields bool
}

func NewOutcome() *Outcome {
	return &Outcome{}
}

func (o *Outcome) NavigateTo(path string) {
	o.redirectTo = path
}

func (o *Outcome) SetOpen(open bool) {
	o.modalOpen = &open
}

func (o *Outcome) ResetFields() {
	o.resetFields = true
}

func (o *Outcome) RedirectTo() string {
	return o.redirectTo
}

type SubmitResult struct {
	RedirectTo  string      `json:"redirect_to,omitempty"`
	ModalOpen   *bool       `json:"modal_open,omitempty"`
	ResetFields bool        `json:"reset_fields"`
	Result      interface{} `json:"result,omitempty"`
}

func (o *Outcome) Result(result interface{}) SubmitResult {
	return SubmitResult{
		RedirectTo:  o.redirectTo,
		ModalOpen:   o.modalOpen,
		ResetFields: o.resetFields,
		Result:      result,
	}
}
