package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/tqinterp/server/result"
	"github.com/dekarrin/tqinterp/server/serr"
)

// HTTPCreateCommand returns a HandlerFunc that interprets a line of input for
// the client's session and returns the stored command record. Input that the
// interpreter cannot understand still creates a command; its error_kind is set
// and its output holds the message for the player.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the session of the client making the request.
func (api API) HTTPCreateCommand() http.HandlerFunc {
	return api.Endpoint(api.epCreateCommand)
}

func (api API) epCreateCommand(req *http.Request) result.Result {
	sesh := requireSession(req)

	var body CommandRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), "%s", err.Error())
	}

	c, err := api.Backend.RunCommand(req.Context(), sesh.ID, body.Input)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), "%s", err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound("session %s no longer exists", sesh.ID)
		}
		return result.InternalServerError("could not run command: %s", err.Error())
	}

	return result.Interpreted(commandModel(c), sesh.ID.String(), c.ID.String(), c.ErrorKind)
}

// HTTPGetAllCommands returns a HandlerFunc that gets every command run by the
// client's session, oldest first.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the session of the client making the request.
func (api API) HTTPGetAllCommands() http.HandlerFunc {
	return api.Endpoint(api.epGetAllCommands)
}

func (api API) epGetAllCommands(req *http.Request) result.Result {
	sesh := requireSession(req)

	coms, err := api.Backend.GetAllCommands(req.Context(), sesh.ID)
	if err != nil {
		return result.InternalServerError("could not get commands: %s", err.Error())
	}

	resp := make([]CommandModel, len(coms))
	for i := range coms {
		resp[i] = commandModel(coms[i])
	}

	return result.OK(resp, "session %s got all commands", sesh.ID)
}

// HTTPGetCommand returns a HandlerFunc that gets a single command. Clients may
// only get commands of their own session.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the session of the client making the request.
func (api API) HTTPGetCommand() http.HandlerFunc {
	return api.Endpoint(api.epGetCommand)
}

func (api API) epGetCommand(req *http.Request) result.Result {
	sesh := requireSession(req)
	id := urlParam(req, "id")

	c, err := api.Backend.GetCommand(req.Context(), sesh.ID, id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		} else if errors.Is(err, serr.ErrPermissions) {
			return result.Forbidden("session %s get command %s: %s", sesh.ID, id, err.Error())
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), "%s", err.Error())
		}
		return result.InternalServerError("could not get command: %s", err.Error())
	}

	return result.OK(commandModel(c), "session %s got command %s", sesh.ID, c.ID)
}
