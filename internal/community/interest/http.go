// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

package interest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/comuna-ec/comuna/internal/platform/middleware"
	requestutil "github.com/comuna-ec/comuna/internal/platform/request"
	"github.com/comuna-ec/comuna/internal/platform/respond"
	"github.com/comuna-ec/comuna/internal/platform/sec"
	"github.com/comuna-ec/comuna/internal/platform/validate"
	"github.com/comuna-ec/comuna/pkg/paging"
)

// Handler implements the area-of-interest HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the area-of-interest catalog.
//
// # Endpoints
//   - GET  /       : Paged public listing.
//   - POST /       : Adds a catalog entry (admin only).
//   - GET  /{slug} : Single entry by slug.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.getBySlug)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.create)
	})

	return router
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

/*
List returns a page of the catalog.

GET /api/v1/areas-of-interest

Response:
  - 200: Page of AreaOfInterest with navigation metadata
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
GetBySlug returns a single catalog entry.

GET /api/v1/areas-of-interest/{slug}

Response:
  - 200: AreaOfInterest
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	area, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, area)
}

/*
Create adds a new catalog entry.

POST /api/v1/areas-of-interest

Request:
  - Body: createRequest (Name, Description)

Response:
  - 201: AreaOfInterest: Created entry
  - 400: ErrInvalidJSON: Validation failure
  - 403: ErrForbidden: Caller is not an admin
  - 409: ErrConflict: Name already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MinLen(FieldName, input.Name, 3).
		MaxLen(FieldName, input.Name, 100).
		MaxLen(FieldDescription, input.Description, 500)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	area, err := handler.service.Create(request.Context(), CreateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, area)
}
