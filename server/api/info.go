package api

import (
	"net/http"

	"github.com/dekarrin/rg2nfa/internal/version"
	"github.com/dekarrin/rg2nfa/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return Endpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.RG2NFA = version.Current

	return result.OK(resp, "client got API info")
}
