package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/visualizer"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
	"go.uber.org/zap"
)

func writeWebsocketJSON(w io.Writer, data envelope) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return wsutil.WriteServerText(w, js)
}

// searchEvents. run one query and stream its search events over a websocket, one json text message per event:
// {"event": {...}}. the last message holds the route ({"data": ...}) or the query error ({"error": ...}),
// then the connection is closed.
func (api *routingAPI) searchEvents(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := parseShortestPathRequest(r)
	if err != nil {
		BadRequestResponse(api.log, w, r, err)
		return
	}

	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("remote", r.RemoteAddr))
		return
	}
	defer conn.Close()

	rr, err := api.routingService.SearchEvents(request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, func(ev visualizer.SearchEvent) error {
			return writeWebsocketJSON(conn, envelope{"event": ev})
		})

	last := envelope{}
	if err == nil {
		last["data"] = NewShortestPathResponse(rr)
	} else {
		resp := errorResponseBody{}
		resp.Error.Message = err.Error()
		switch util.ErrorCode(err) {
		case util.ErrBadParamInput:
			resp.Error.Code = http.StatusText(http.StatusBadRequest)
		case util.ErrNotFound:
			resp.Error.Code = http.StatusText(http.StatusNotFound)
		default:
			resp.Error.Code = http.StatusText(http.StatusInternalServerError)
			resp.Error.Message = util.MessageInternalServerError
			api.log.Error("search events query failed", zap.Error(err))
		}
		last["error"] = resp.Error
		if rr != nil && isUnreachable(err) {
			last["data"] = NewShortestPathResponse(rr)
		}
	}

	if err := writeWebsocketJSON(conn, last); err != nil {
		api.log.Info("write search result", zap.Error(err))
		return
	}
	_ = ws.WriteFrame(conn, ws.NewCloseFrame(ws.NewCloseFrameBody(ws.StatusNormalClosure, "")))
}
