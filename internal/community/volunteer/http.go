// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package volunteer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/comuna-ec/comuna/internal/platform/middleware"
	requestutil "github.com/comuna-ec/comuna/internal/platform/request"
	"github.com/comuna-ec/comuna/internal/platform/respond"
	"github.com/comuna-ec/comuna/internal/platform/sec"
	"github.com/comuna-ec/comuna/internal/platform/validate"
	"github.com/comuna-ec/comuna/pkg/paging"
	"github.com/comuna-ec/comuna/pkg/query"
)

// Handler implements the volunteer application HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for volunteer applications.
//
// # Endpoints
//   - POST /         : Submits an application (public).
//   - GET  /         : Paged listing with search and areas filter (moderators).
//   - GET  /by-email : Single application lookup (moderators).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleModerator))
		r.Get("/", handler.list)
		r.Get("/by-email", handler.getByEmail)
	})

	return router
}

type createRequest struct {
	FullName                  string   `json:"fullName"`
	Email                     string   `json:"email"`
	PhoneNumber               string   `json:"phoneNumber"`
	City                      string   `json:"city"`
	Country                   string   `json:"country"`
	HasVolunteeringExperience bool     `json:"hasVolunteeringExperience"`
	AreasOfInterest           []string `json:"areasOfInterest"`
	OtherAreas                string   `json:"otherAreas"`
	AvailableTime             string   `json:"availableTime"`
	SkillsOrKnowledge         string   `json:"skillsOrKnowledge"`
	WhyVolunteer              string   `json:"whyVolunteer"`
	AdditionalComments        string   `json:"additionalComments"`
}

/*
Create submits a new volunteer application.

POST /api/v1/volunteer-applications

Request:
  - Body: createRequest (full application form)

Response:
  - 201: Application: Submitted application
  - 400: ErrInvalidJSON: Validation failure
  - 409: ErrConflict: Email already applied
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFullName, input.FullName).
		MinLen(FieldFullName, input.FullName, 3).
		MaxLen(FieldFullName, input.FullName, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, 255).
		MaxLen(FieldPhoneNumber, input.PhoneNumber, 20).
		Required(FieldCity, input.City).
		MaxLen(FieldCity, input.City, 100).
		Required(FieldCountry, input.Country).
		MaxLen(FieldCountry, input.Country, 100).
		Required(FieldAvailableTime, input.AvailableTime).
		Required(FieldWhyVolunteer, input.WhyVolunteer).
		MaxLen(FieldWhyVolunteer, input.WhyVolunteer, 1000).
		Custom(FieldAreasOfInterest, len(input.AreasOfInterest) == 0, "Select at least one area of interest")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	application, err := handler.service.Create(request.Context(), CreateInput{
		FullName:                  input.FullName,
		Email:                     input.Email,
		PhoneNumber:               input.PhoneNumber,
		City:                      input.City,
		Country:                   input.Country,
		HasVolunteeringExperience: input.HasVolunteeringExperience,
		AreasOfInterest:           input.AreasOfInterest,
		OtherAreas:                input.OtherAreas,
		AvailableTime:             input.AvailableTime,
		SkillsOrKnowledge:         input.SkillsOrKnowledge,
		WhyVolunteer:              input.WhyVolunteer,
		AdditionalComments:        input.AdditionalComments,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, application)
}

/*
List returns a page of applications.

GET /api/v1/volunteer-applications?areas=EventOrganization,TechnicalSupport

Description: Supports the standard paging parameters plus an optional
comma-separated areas filter.

Response:
  - 200: Page of Application with navigation metadata
  - 403: ErrForbidden: Caller lacks the moderator role
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := ListFilter{
		Areas: query.StringSlice(request.URL.Query().Get("areas")),
	}

	page, err := handler.service.List(request.Context(), paging.FromRequest(request), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page)
}

/*
GetByEmail returns the application submitted under an email.

GET /api/v1/volunteer-applications/by-email?email=ana@example.com

Response:
  - 200: Application
  - 404: ErrNotFound: No application under this email
*/
func (handler *Handler) getByEmail(writer http.ResponseWriter, request *http.Request) {
	email := request.URL.Query().Get("email")

	v := &validate.Validator{}
	v.Required(FieldEmail, email).Email(FieldEmail, email)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	application, err := handler.service.GetByEmail(request.Context(), email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, application)
}
