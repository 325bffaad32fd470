package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/tqinterp/server/result"
	"github.com/dekarrin/tqinterp/server/serr"
	"github.com/dekarrin/tqinterp/server/token"
)

// HTTPCreateSession returns a HandlerFunc that creates a new session and
// returns its ID along with a token for it. No authentication is required.
func (api API) HTTPCreateSession() http.HandlerFunc {
	return api.Endpoint(api.epCreateSession)
}

func (api API) epCreateSession(req *http.Request) result.Result {
	sesh, err := api.Backend.CreateSession(req.Context())
	if err != nil {
		return result.InternalServerError("could not create session: %s", err.Error())
	}

	tok, err := token.Generate(api.Secret, sesh)
	if err != nil {
		return result.InternalServerError("could not generate JWT: %s", err.Error())
	}

	resp := TokenResponse{
		ID:    sesh.ID.String(),
		Token: tok,
	}
	return result.Created(resp, "session %s created", sesh.ID)
}

// HTTPGetSession returns a HandlerFunc that gets a session. Clients may only
// get their own session.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the session of the client making the request.
func (api API) HTTPGetSession() http.HandlerFunc {
	return api.Endpoint(api.epGetSession)
}

func (api API) epGetSession(req *http.Request) result.Result {
	own := requireSession(req)
	id := urlParam(req, "id")

	if id != own.ID.String() {
		return result.Forbidden("session %s get session %s: forbidden", own.ID, id)
	}

	sesh, err := api.Backend.GetSession(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), "%s", err.Error())
		}
		return result.InternalServerError("could not get session: %s", err.Error())
	}

	return result.OK(sessionModel(sesh), "session %s got self", sesh.ID)
}
