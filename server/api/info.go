package api

import (
	"net/http"

	"github.com/dekarrin/tqinterp/internal/version"
	"github.com/dekarrin/tqinterp/server/dao"
	"github.com/dekarrin/tqinterp/server/middle"
	"github.com/dekarrin/tqinterp/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// a value denoting whether the client making the request has a session.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return api.Endpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	loggedIn := req.Context().Value(middle.AuthLoggedIn).(bool)

	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Interpreter = version.Current

	clientStr := "unauthed client"
	if loggedIn {
		sesh := req.Context().Value(middle.AuthSession).(dao.Session)
		clientStr = "session " + sesh.ID.String()
	}
	return result.OK(resp, "%s got API info", clientStr)
}
