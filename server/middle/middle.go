// Package middle contains middleware for use with the interpreter server.
package middle

import (
	"context"
	"net/http"
	"time"

	"github.com/dekarrin/tqinterp/server/dao"
	"github.com/dekarrin/tqinterp/server/result"
	"github.com/dekarrin/tqinterp/server/token"
)

// Middleware is a function that takes a handler and returns a new handler which
// wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
	AuthSession
)

// AuthHandler is middleware that will accept a request, extract the token used
// for authentication, and make calls to get the Session entity that the token
// was issued for.
//
// Keys are added to the request context before the request is passed to the
// next step in the chain. AuthSession will contain the session, and
// AuthLoggedIn will return whether a valid token was given (only applies for
// optional auth; for required auth, an invalid token will result in an HTTP
// error being returned before the request is passed to the next handler).
type AuthHandler struct {
	db            dao.SessionRepository
	secret        []byte
	required      bool
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool
	var sesh dao.Session

	tok, err := token.Get(req)
	if err != nil {
		// deliberately leaving as embedded if instead of &&
		if ah.required {
			r := result.Unauthorized("", err.Error())
			logResult(req, r)
			time.Sleep(ah.unauthedDelay)
			r.WriteResponse(w)
			return
		}
	} else {
		lookupSesh, err := token.Validate(req.Context(), tok, ah.secret, ah.db)
		if err != nil {
			// deliberately leaving as embedded if instead of &&
			if ah.required {
				r := result.Unauthorized("", err.Error())
				logResult(req, r)
				time.Sleep(ah.unauthedDelay)
				r.WriteResponse(w)
				return
			}
		} else {
			sesh = lookupSesh
			loggedIn = true
		}
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, AuthLoggedIn, loggedIn)
	ctx = context.WithValue(ctx, AuthSession, sesh)
	req = req.WithContext(ctx)
	ah.next.ServeHTTP(w, req)
}

func RequireAuth(db dao.SessionRepository, secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			secret:        secret,
			unauthedDelay: unauthDelay,
			required:      true,
			next:          next,
		}
	}
}

func OptionalAuth(db dao.SessionRepository, secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			secret:        secret,
			unauthedDelay: unauthDelay,
			required:      false,
			next:          next,
		}
	}
}

func logResult(req *http.Request, r result.Result) {
	r.Log(req)
}
