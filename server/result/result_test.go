package result

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_InternalMsg(t *testing.T) {
	testCases := []struct {
		name   string
		r      Result
		expect string
	}{
		{
			name:   "default",
			r:      InternalServerError(),
			expect: "internal server error",
		},
		{
			name:   "lone string is not a format",
			r:      InternalServerError("disk 100% full"),
			expect: "disk 100% full",
		},
		{
			name:   "format with percent in the arg",
			r:      InternalServerError("could not run command: %s", "disk 100% full"),
			expect: "could not run command: disk 100% full",
		},
		{
			name:   "bad request echoing an error",
			r:      BadRequest("no", "%s", "50%off is not JSON"),
			expect: "50%off is not JSON",
		},
		{
			name:   "format args",
			r:      OK(nil, "session %s got command %d", "abc", 3),
			expect: "session abc got command 3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, tc.r.InternalMsg)
		})
	}
}

func Test_Interpreted(t *testing.T) {
	testCases := []struct {
		name        string
		errKind     string
		expectLevel string
		expectMsg   string
	}{
		{
			name:        "understood",
			expectLevel: "INFO",
			expectMsg:   "session s1 ran command c1",
		},
		{
			name:        "interpreter stopped",
			errKind:     "UnknownWord",
			expectLevel: "WARN",
			expectMsg:   "session s1 ran command c1: interpreter stopped with UnknownWord",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := Interpreted(map[string]string{"id": "c1"}, "s1", "c1", tc.errKind)

			assert.Equal(http.StatusCreated, r.Status)
			assert.False(r.IsErr)
			assert.Equal(tc.expectLevel, r.Level())
			assert.Equal(tc.expectMsg, r.InternalMsg)
		})
	}
}

func Test_Result_WriteResponse(t *testing.T) {
	assert := assert.New(t)
	w := httptest.NewRecorder()

	Unauthorized("").WriteResponse(w)

	assert.Equal(http.StatusUnauthorized, w.Code)
	assert.Equal("application/json", w.Header().Get("Content-Type"))
	assert.Contains(w.Header().Get("WWW-Authenticate"), "Bearer")

	var body ErrorResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(ErrorResponse{Error: "You are not authorized to do that", Status: http.StatusUnauthorized}, body)
}

func Test_Result_WithHeader_doesNotShare(t *testing.T) {
	assert := assert.New(t)

	base := OK("x").WithHeader("A", "1")
	withB := base.WithHeader("B", "2")
	withC := base.WithHeader("C", "3")

	assert.Len(base.hdrs, 1)
	assert.Equal([2]string{"B", "2"}, withB.hdrs[1])
	assert.Equal([2]string{"C", "3"}, withC.hdrs[1])
}

func Test_Log(t *testing.T) {
	testCases := []struct {
		name       string
		level      string
		remoteAddr string
		expect     string
	}{
		{
			name:       "ipv4 with port",
			level:      "INFO",
			remoteAddr: "10.0.0.5:51234",
			expect:     "INFO  10.0.0.5 GET /api/v1/info: HTTP-200 done\n",
		},
		{
			name:       "ipv6 with port",
			level:      "ERROR",
			remoteAddr: "[::1]:51234",
			expect:     "ERROR ::1 GET /api/v1/info: HTTP-200 done\n",
		},
		{
			name:       "long level is cut",
			level:      "WARNING",
			remoteAddr: "10.0.0.5",
			expect:     "WARNI 10.0.0.5 GET /api/v1/info: HTTP-200 done\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var buf bytes.Buffer
			log.SetOutput(&buf)
			log.SetFlags(0)
			defer func() {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.LstdFlags)
			}()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/info", nil)
			req.RemoteAddr = tc.remoteAddr

			Log(tc.level, req, http.StatusOK, "done")

			assert.Equal(tc.expect, buf.String())
		})
	}
}
