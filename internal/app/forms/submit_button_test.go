package forms

import (
	"bytes"
	"carepulse-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitButton(t *testing.T) {
	idle := NewSubmitButton("Get Started", false, "")
	assert.Equal(t, "Get Started", idle.Label)
	assert.Equal(t, ButtonVariantPrimary, idle.Variant)
	assert.Empty(t, idle.LoaderIcon)
	assert.True(t, idle.Accepts())

	busy := NewSubmitButton("Cancel Appointment", true, ButtonVariantDanger)
	assert.True(t, busy.Disabled)
	assert.Equal(t, constvars.LoaderIconSrc, busy.LoaderIcon)
	assert.False(t, busy.Accepts())
}

func TestOutcome(t *testing.T) {
	outcome := NewOutcome()
	assert.Nil(t, outcome.Result(nil).ModalOpen)

	outcome.NavigateTo("/patients/u1/register")
	outcome.SetOpen(false)
	outcome.ResetFields()

	result := outcome.Result("data")
	assert.Equal(t, "/patients/u1/register", result.RedirectTo)
	require.NotNil(t, result.ModalOpen)
	assert.False(t, *result.ModalOpen)
	assert.True(t, result.ResetFields)
}

func TestRenderer_Render(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	t.Run("busy cancel form", func(t *testing.T) {
		form := &AppointmentForm{}
		view := form.View("signed-token", true, CancelMode{}, AppointmentValues{CancellationReason: "Travel"})
		view.Action = "/api/v1/forms/appointment"

		var buf bytes.Buffer
		require.NoError(t, renderer.Render(&buf, view))
		html := buf.String()

		assert.Contains(t, html, `action="/api/v1/forms/appointment"`)
		assert.Contains(t, html, `name="formToken" value="signed-token"`)
		assert.Contains(t, html, `name="cancellationReason"`)
		assert.Contains(t, html, "Travel</textarea>")
		assert.Contains(t, html, "shad-danger-btn")
		assert.Contains(t, html, " disabled")
		assert.Contains(t, html, constvars.LoaderIconSrc)
		assert.NotContains(t, html, `name="primaryPhysician"`)
	})

	t.Run("registration form with field errors", func(t *testing.T) {
		form := &RegistrationForm{}
		view := form.View("t", false, RegistrationSchema{Gender: "Other"}).WithErrors(map[string]string{"email": "email must be a valid email"})

		var buf bytes.Buffer
		require.NoError(t, renderer.Render(&buf, view))
		html := buf.String()

		assert.Contains(t, html, `enctype="multipart/form-data"`)
		assert.Contains(t, html, `type="file"`)
		assert.Contains(t, html, `value="Other" checked`)
		assert.Contains(t, html, "email must be a valid email")
		assert.Contains(t, html, "Get Started")
	})
}
