package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/navigatorx-lite/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-lite/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-lite/pkg/server/rest/service"
)

type NavigationService interface {
	NearestVertex(ctx context.Context, lat, lon float64) (datastructure.Vertex, error)
	GetVertex(ctx context.Context, id int64) (datastructure.Vertex, []int64, error)
	ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64, simplify bool) (datastructure.Route, error)
	ShortestPathMany(ctx context.Context, queries []concurrent.ShortestPathParam) ([]service.ShortestPathResult, error)
}

type NavigationHandler struct {
	svc      NavigationService
	validate *validator.Validate
	trans    ut.Translator
}

func NavigatorRouter(r *chi.Mux, svc NavigationService) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &NavigationHandler{svc: svc, validate: validate, trans: trans}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/nearest-vertex", handler.NearestVertex)
			r.Post("/shortest-path", handler.ShortestPath)
			r.Post("/shortest-path/many", handler.ShortestPathMany)
			r.Get("/vertices/{id}", handler.GetVertex)
		})
	})
}

// NearestVertexRequest model info
//
//	@Description	request body for nearest road intersection query
type NearestVertexRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (s *NearestVertexRequest) Bind(r *http.Request) error {
	return nil
}

type VertexResponse struct {
	ID        int64   `json:"id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Neighbors []int64 `json:"neighbors,omitempty"`
}

func NewVertexResponse(v datastructure.Vertex, neighbors []int64) *VertexResponse {
	return &VertexResponse{
		ID:        v.ID,
		Lat:       v.Lat,
		Lon:       v.Lon,
		Neighbors: neighbors,
	}
}

// NearestVertex
//
//	@Summary		nearest road intersection (graph vertex) of a coordinate
//	@Tags			navigations
//	@Param			body	body	NearestVertexRequest	true	"request body nearest vertex"
//	@Router			/navigations/nearest-vertex [post]
//	@Success		200	{object}	VertexResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) NearestVertex(w http.ResponseWriter, r *http.Request) {
	data := &NearestVertexRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := h.validate.Struct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, h.translateError(err)))
		return
	}

	v, err := h.svc.NearestVertex(r.Context(), data.Lat, data.Lon)
	if err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewVertexResponse(v, nil))
}

// GetVertex
//
//	@Summary		coordinates and neighbors of a graph vertex
//	@Tags			navigations
//	@Param			id	path	int	true	"vertex id (osm node id)"
//	@Router			/navigations/vertices/{id} [get]
//	@Success		200	{object}	VertexResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) GetVertex(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("vertex id must be an integer")))
		return
	}

	v, neighbors, err := h.svc.GetVertex(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewVertexResponse(v, neighbors))
}

// ShortestPathRequest model info
//
//	@Description	request body for shortest path query
type ShortestPathRequest struct {
	SrcLat   float64 `json:"src_lat" validate:"gte=-90,lte=90"`
	SrcLon   float64 `json:"src_lon" validate:"gte=-180,lte=180"`
	DstLat   float64 `json:"dst_lat" validate:"gte=-90,lte=90"`
	DstLon   float64 `json:"dst_lon" validate:"gte=-180,lte=180"`
	Simplify bool    `json:"simplify"`
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	return nil
}

// ShortestPathResponse model info
//
//	@Description	response body for shortest path query
type ShortestPathResponse struct {
	Found      bool                       `json:"found"`
	VertexIDs  []int64                    `json:"vertex_ids"`
	Path       []datastructure.Coordinate `json:"path"`
	Polyline   string                     `json:"polyline"`
	Dist       float64                    `json:"dist"`
	DistMeters float64                    `json:"dist_meters"`
	Error      string                     `json:"error,omitempty"`
}

func NewShortestPathResponse(route datastructure.Route) *ShortestPathResponse {
	vertexIDs := route.VertexIDs
	if vertexIDs == nil {
		vertexIDs = []int64{}
	}
	path := route.Path
	if path == nil {
		path = []datastructure.Coordinate{}
	}
	return &ShortestPathResponse{
		Found:      route.Found(),
		VertexIDs:  vertexIDs,
		Path:       path,
		Polyline:   route.Polyline,
		Dist:       route.Dist,
		DistMeters: route.DistMeters,
	}
}

// ShortestPath
//
//	@Summary		shortest route between the road intersections nearest to source and destination
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"request body shortest path"
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := h.validate.Struct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, h.translateError(err)))
		return
	}

	route, err := h.svc.ShortestPath(r.Context(), data.SrcLat, data.SrcLon, data.DstLat, data.DstLon, data.Simplify)
	if err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewShortestPathResponse(route))
}

type ShortestPathManyRequest struct {
	Queries []ShortestPathRequest `json:"queries" validate:"required,min=1,max=100,dive"`
}

func (s *ShortestPathManyRequest) Bind(r *http.Request) error {
	if len(s.Queries) == 0 {
		return errors.New("queries cannot be empty")
	}
	return nil
}

type ShortestPathManyResponse struct {
	Routes []*ShortestPathResponse `json:"routes"`
}

// ShortestPathMany
//
//	@Summary		many shortest path queries in one request, answered concurrently
//	@Tags			navigations
//	@Param			body	body	ShortestPathManyRequest	true	"request body many shortest path"
//	@Router			/navigations/shortest-path/many [post]
//	@Success		200	{object}	ShortestPathManyResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) ShortestPathMany(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathManyRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := h.validate.Struct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, h.translateError(err)))
		return
	}

	queries := make([]concurrent.ShortestPathParam, 0, len(data.Queries))
	for i, q := range data.Queries {
		queries = append(queries, concurrent.NewShortestPathParam(r.Context(), i, q.SrcLat, q.SrcLon,
			q.DstLat, q.DstLon, q.Simplify))
	}

	results, err := h.svc.ShortestPathMany(r.Context(), queries)
	if err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}

	resp := &ShortestPathManyResponse{Routes: make([]*ShortestPathResponse, 0, len(results))}
	for _, res := range results {
		route := NewShortestPathResponse(res.Route)
		if res.Err != nil {
			route.Error = errorMessage(res.Err)
		}
		resp.Routes = append(resp.Routes, route)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *NavigationHandler) translateError(err error) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(h.trans)))
	}
	return errs
}
