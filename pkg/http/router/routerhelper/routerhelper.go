package routerhelper

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup. httprouter routes sharing a path prefix
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{
		router: router,
		prefix: prefix,
	}
}

func (rg *RouteGroup) Group(prefix string) *RouteGroup {
	return NewRouteGroup(rg.router, rg.subPath(prefix))
}

func (rg *RouteGroup) subPath(p string) string {
	result := path.Join(rg.prefix, p)
	// path.Join drops a trailing slash, httprouter tells /a and /a/ apart
	if len(p) > 0 && p[len(p)-1] == '/' && result[len(result)-1] != '/' {
		result += "/"
	}
	return result
}

func (rg *RouteGroup) Handle(method, p string, handle httprouter.Handle) {
	rg.router.Handle(method, rg.subPath(p), handle)
}

func (rg *RouteGroup) GET(p string, handle httprouter.Handle) {
	rg.Handle(http.MethodGet, p, handle)
}

func (rg *RouteGroup) POST(p string, handle httprouter.Handle) {
	rg.Handle(http.MethodPost, p, handle)
}

func (rg *RouteGroup) DELETE(p string, handle httprouter.Handle) {
	rg.Handle(http.MethodDelete, p, handle)
}
