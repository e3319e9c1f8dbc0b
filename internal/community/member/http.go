// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package member

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/comuna-ec/comuna/internal/platform/request"
	"github.com/comuna-ec/comuna/internal/platform/respond"
	"github.com/comuna-ec/comuna/internal/platform/validate"
	"github.com/comuna-ec/comuna/pkg/paging"
)

// Handler implements the community member HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the member registry.
//
// # Endpoints
//   - GET  / : Paged listing with search.
//   - POST / : Registers a member.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	return router
}

type createRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

/*
List returns a page of the member registry.

GET /api/v1/community/members

Response:
  - 200: Page of Member with navigation metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.List(request.Context(), paging.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page)
}

/*
Create registers a new community member.

POST /api/v1/community/members

Request:
  - Body: createRequest (FullName, Email)

Response:
  - 201: Member: Created entry
  - 400: ErrInvalidJSON: Validation failure
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
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.Create(request.Context(), CreateInput{
		FullName: input.FullName,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, member)
}
