package pokemon

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pokedex/internal/platform/apperr"
	requestutil "github.com/taibuivan/pokedex/internal/platform/request"
	"github.com/taibuivan/pokedex/internal/platform/respond"
	"github.com/taibuivan/pokedex/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the catalog.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
	images  http.Handler
}

// NewHandler constructs a new catalog [Handler]. images serves the record
// image files and is mounted under /images/.
func NewHandler(service *Service, images http.Handler) *Handler {
	return &Handler{service: service, images: images}
}

// Routes returns a [chi.Router] configured with the catalog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPokemons)
	router.Post("/", handler.createPokemon)
	router.Get("/{id}", handler.getPokemon)

	// ## Image Assets
	if handler.images != nil {
		router.Get("/images/*", handler.images.ServeHTTP)
		router.Head("/images/*", handler.images.ServeHTTP)
	}

	return router
}

/*
GET /pokemons.

Description: Searches the catalog by name or type and returns one page.

Request:
  - search: string (case-insensitive substring, optional)
  - page: int (default 1)
  - limit: int (default 10)

Response:
  - 200: ListResult
  - 500: NO_DATA
*/
func (handler *Handler) listPokemons(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{
		Search: request.URL.Query().Get("search"),
		Params: pagination.FromRequest(request),
	}

	result, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, result)
}

/*
GET /pokemons/{id}.

Description: Retrieves a single record with its previous and next neighbors.

Request:
  - id: int

Response:
  - 200: Detail (wrapped in "data")
  - 404: NOT_FOUND
  - 500: NO_DATA
*/
func (handler *Handler) getPokemon(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, apperr.NotFound("Pokemon"))
		return
	}

	detail, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
POST /pokemons.

Description: Adds a new record to the end of the catalog.

Request:
  - Body: Candidate

Response:
  - 201: Pokemon
  - 400: MISSING_FIELD, TOO_MANY_TYPES, INVALID_TYPE, INVALID_ID, VALIDATION_ERROR
  - 409: DUPLICATE
*/
func (handler *Handler) createPokemon(writer http.ResponseWriter, request *http.Request) {
	var candidate Candidate
	if err := requestutil.DecodeJSON(writer, request, &candidate); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.Create(request.Context(), candidate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}
