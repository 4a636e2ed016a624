package controllers

import (
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/http/usecases"
)

// presence is checked while parsing the query, so zero coordinates stay valid
type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
}

type visualizeRouteRequest struct {
	shortestPathRequest
	IncludeUnvisited bool `json:"include_unvisited"`
}

type edgeUsageRequest struct {
	K int `json:"k" validate:"min=1,max=10000"`
}

type shortestPathResponse struct {
	Origin      datastructure.Index `json:"origin"`
	Destination datastructure.Index `json:"destination"`
	Eta         float64             `json:"eta"`
	Dist        float64             `json:"distance"`
	Path        string              `json:"path"`
	MaxSpeeds   []float64           `json:"maxspeeds"`
	Edges       []uint32            `json:"edges"`
	Steps       int                 `json:"steps"`
}

func NewShortestPathResponse(rr *usecases.RouteResult) shortestPathResponse {
	edges := make([]uint32, len(rr.Edges))
	for i, e := range rr.Edges {
		edges[i] = uint32(e)
	}
	return shortestPathResponse{
		Origin:      rr.Origin,
		Destination: rr.Destination,
		Eta:         rr.TravelTime,
		Dist:        rr.DistanceKm,
		Path:        rr.Polyline,
		MaxSpeeds:   rr.MaxSpeeds,
		Edges:       edges,
		Steps:       rr.Steps,
	}
}

type edgeUsage struct {
	EdgeId datastructure.Index `json:"edge_id"`
	From   datastructure.Index `json:"from"`
	To     datastructure.Index `json:"to"`
	Count  uint64              `json:"count"`
}

type edgeUsageResponse struct {
	Algorithm string      `json:"algorithm"`
	Total     uint64      `json:"total"`
	Edges     []edgeUsage `json:"edges"`
}

func NewEdgeUsageResponse(report *usecases.EdgeUsageReport) edgeUsageResponse {
	edges := make([]edgeUsage, len(report.Edges))
	for i, e := range report.Edges {
		edges[i] = edgeUsage{EdgeId: e.EdgeId, From: e.From, To: e.To, Count: e.Count}
	}
	return edgeUsageResponse{
		Algorithm: report.Algorithm,
		Total:     report.Total,
		Edges:     edges,
	}
}

type errorResponseBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
