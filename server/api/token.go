package api

import (
	"net/http"

	"github.com/dekarrin/tqinterp/server/result"
	"github.com/dekarrin/tqinterp/server/token"
)

// HTTPCreateToken returns a HandlerFunc that creates a new token for the
// session the client is authenticated as.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the session of the client making the request.
func (api API) HTTPCreateToken() http.HandlerFunc {
	return api.Endpoint(api.epCreateToken)
}

func (api API) epCreateToken(req *http.Request) result.Result {
	sesh := requireSession(req)

	tok, err := token.Generate(api.Secret, sesh)
	if err != nil {
		return result.InternalServerError("could not generate JWT: %s", err.Error())
	}

	resp := TokenResponse{
		ID:    sesh.ID.String(),
		Token: tok,
	}
	return result.Created(resp, "session %s successfully created new token", sesh.ID)
}
