package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/routing"
	helper "github.com/lintang-b-s/navigatorx-dijkstra/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

const (
	DEFAULT_TOP_K_EDGES = 10
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.GET("/visualizeRoute", api.visualizeRoute)
	group.GET("/edgeUsage", api.edgeUsage)
}

// WebsocketRoutes. routes served over a websocket upgrade
func (api *routingAPI) WebsocketRoutes(group *helper.RouteGroup) {
	group.GET("/searchEvents", api.searchEvents)
}

func parseShortestPathRequest(r *http.Request) (shortestPathRequest, error) {
	var (
		request shortestPathRequest
		err     error
	)
	query := r.URL.Query()

	if request.OriginLat, err = parseFloatParam(query, "origin_lat"); err != nil {
		return request, err
	}
	if request.OriginLon, err = parseFloatParam(query, "origin_lon"); err != nil {
		return request, err
	}
	if request.DestinationLat, err = parseFloatParam(query, "destination_lat"); err != nil {
		return request, err
	}
	if request.DestinationLon, err = parseFloatParam(query, "destination_lon"); err != nil {
		return request, err
	}
	return request, validateRequest(request)
}

func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := parseShortestPathRequest(r)
	if err != nil {
		BadRequestResponse(api.log, w, r, err)
		return
	}

	rr, err := api.routingService.ShortestPath(request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon)
	if err != nil {
		ErrorCodeResponse(api.log, w, r, err)
		return
	}

	headers := make(http.Header)

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(rr)}, headers); err != nil {
		ServerErrorResponse(api.log, w, r, err)
		return
	}
}

func (api *routingAPI) visualizeRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request visualizeRouteRequest
		err     error
	)
	request.shortestPathRequest, err = parseShortestPathRequest(r)
	if err != nil {
		BadRequestResponse(api.log, w, r, err)
		return
	}
	if v := r.URL.Query().Get("include_unvisited"); v != "" {
		request.IncludeUnvisited, err = strconv.ParseBool(v)
		if err != nil {
			BadRequestResponse(api.log, w, r, errors.New("include_unvisited must be a valid bool"))
			return
		}
	}

	fc, _, err := api.routingService.VisualizeRoute(request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, request.IncludeUnvisited)
	if err != nil {
		ErrorCodeResponse(api.log, w, r, err)
		return
	}

	js, err := fc.MarshalJSON()
	if err != nil {
		ServerErrorResponse(api.log, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(js)
}

func (api *routingAPI) edgeUsage(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request := edgeUsageRequest{K: DEFAULT_TOP_K_EDGES}
	if k := r.URL.Query().Get("k"); k != "" {
		var err error
		request.K, err = strconv.Atoi(k)
		if err != nil {
			BadRequestResponse(api.log, w, r, errors.New("k must be a valid int"))
			return
		}
	}
	if err := validateRequest(request); err != nil {
		BadRequestResponse(api.log, w, r, err)
		return
	}

	report := api.routingService.EdgeUsage(request.K)

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewEdgeUsageResponse(report)}, nil); err != nil {
		ServerErrorResponse(api.log, w, r, err)
		return
	}
}

func isUnreachable(err error) bool {
	return errors.Is(err, routing.ErrDestinationUnreachable)
}
