package routers

import (
	"carepulse-service/internal/app/delivery/http/controllers"
	"carepulse-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachFormRoutes(router chi.Router, formController *controllers.FormController) {
	router.Get("/intake", formController.GetIntakeForm)
	router.Post("/intake", formController.SubmitIntakeForm)

	registrationPath := "/registration/{" + constvars.URLParamUserID + "}"
	router.Get(registrationPath, formController.GetRegistrationForm)
	router.Post(registrationPath, formController.SubmitRegistrationForm)

	router.Get("/appointment", formController.GetAppointmentForm)
	router.Post("/appointment", formController.SubmitAppointmentForm)
}
