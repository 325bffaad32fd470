// Package result holds what an endpoint decided: the status and JSON body sent
// to the client and the message that goes to the server log.
package result

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
)

// ErrorResponse is the body of every error result.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Result is the outcome of handling one request.
type Result struct {
	Status      int
	IsErr       bool
	InternalMsg string

	// Warn marks a successful result that should still stand out in the log.
	Warn bool

	resp interface{}
	hdrs [][2]string

	// set by PrepareMarshaledResponse.
	respJSONBytes []byte
}

// internalMsg builds a log message from the optional trailing args of the
// result constructors. A lone string is used as-is; a string followed by more
// args is a format string.
func internalMsg(def string, args []interface{}) string {
	if len(args) == 0 {
		return def
	}
	format, ok := args[0].(string)
	if !ok {
		return fmt.Sprint(args...)
	}
	if len(args) == 1 {
		return format
	}
	return fmt.Sprintf(format, args[1:]...)
}

// OK is an HTTP-200 with respObj as the body.
func OK(respObj interface{}, internal ...interface{}) Result {
	return Response(http.StatusOK, respObj, internalMsg("OK", internal))
}

// Created is an HTTP-201 with respObj as the body.
func Created(respObj interface{}, internal ...interface{}) Result {
	return Response(http.StatusCreated, respObj, internalMsg("created", internal))
}

// Interpreted is an HTTP-201 for a command record that sessionID just ran.
// errKind is the kind of error the interpreter stopped with, or empty if it
// did not stop. A stopped command is not a failed request, but it is logged
// as a warning naming the kind.
func Interpreted(cmdObj interface{}, sessionID, commandID, errKind string) Result {
	if errKind == "" {
		return Response(http.StatusCreated, cmdObj, fmt.Sprintf("session %s ran command %s", sessionID, commandID))
	}
	r := Response(http.StatusCreated, cmdObj, fmt.Sprintf("session %s ran command %s: interpreter stopped with %s", sessionID, commandID, errKind))
	r.Warn = true
	return r
}

// BadRequest is an HTTP-400 that shows userMsg to the client.
func BadRequest(userMsg string, internal ...interface{}) Result {
	return Err(http.StatusBadRequest, userMsg, internalMsg("bad request", internal))
}

// NotFound is an HTTP-404.
func NotFound(internal ...interface{}) Result {
	return Err(http.StatusNotFound, "The requested resource was not found", internalMsg("not found", internal))
}

// Forbidden is an HTTP-403.
func Forbidden(internal ...interface{}) Result {
	return Err(http.StatusForbidden, "You don't have permission to do that", internalMsg("forbidden", internal))
}

// MethodNotAllowed is an HTTP-405 for a route that exists but does not take
// method.
func MethodNotAllowed(method string) Result {
	return Err(http.StatusMethodNotAllowed, fmt.Sprintf("Method %s is not allowed for this resource", method), "method not allowed")
}

// Unauthorized is an HTTP-401 along with the WWW-Authenticate header clients
// need to retry with a session token. If userMsg is empty a generic one is
// used.
func Unauthorized(userMsg string, internal ...interface{}) Result {
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}
	return Err(http.StatusUnauthorized, userMsg, internalMsg("unauthorized", internal)).
		WithHeader("WWW-Authenticate", `Bearer realm="tqinterp server", charset="utf-8"`)
}

// InternalServerError is an HTTP-500. The client only ever sees a generic
// message.
func InternalServerError(internal ...interface{}) Result {
	return Err(http.StatusInternalServerError, "An internal server error occurred", internalMsg("internal server error", internal))
}

// Response is a successful result. respObj is not read for
// http.StatusNoContent and may be nil only then.
func Response(status int, respObj interface{}, internal string) Result {
	return Result{
		Status:      status,
		InternalMsg: internal,
		resp:        respObj,
	}
}

// Err is an error result whose body is an ErrorResponse showing userMsg.
func Err(status int, userMsg, internal string) Result {
	return Result{
		Status:      status,
		IsErr:       true,
		InternalMsg: internal,
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// WithHeader returns a copy of r that also sets the named header.
func (r Result) WithHeader(name, val string) Result {
	hdrs := make([][2]string, len(r.hdrs), len(r.hdrs)+1)
	copy(hdrs, r.hdrs)
	r.hdrs = append(hdrs, [2]string{name, val})
	r.respJSONBytes = nil
	return r
}

// Level is the log level of r.
func (r Result) Level() string {
	switch {
	case r.IsErr:
		return "ERROR"
	case r.Warn:
		return "WARN"
	default:
		return "INFO"
	}
}

// Log writes r to the server log at its own level.
func (r Result) Log(req *http.Request) {
	Log(r.Level(), req, r.Status, r.InternalMsg)
}

// PrepareMarshaledResponse marshals the body ahead of writing so a marshal
// failure can still be turned into a proper error result. Calling it again
// after it succeeds does nothing.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil || r.Status == http.StatusNoContent {
		return nil
	}

	var err error
	r.respJSONBytes, err = json.Marshal(r.resp)
	return err
}

// WriteResponse writes r to w. It panics if r was never populated or its body
// cannot be marshaled; call PrepareMarshaledResponse first to avoid the
// latter.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}
	if err := r.PrepareMarshaledResponse(); err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)
	if r.Status != http.StatusNoContent {
		w.Write(r.respJSONBytes)
	}
}

// Log writes one line describing a response to the standard logger. level is
// padded or cut to five characters so that log lines stay aligned.
func Log(level string, req *http.Request, respStatus int, msg string) {
	// the client's ephemeral port is noise
	remoteIP, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		remoteIP = req.RemoteAddr
	}

	log.Printf("%-5.5s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, respStatus, msg)
}
