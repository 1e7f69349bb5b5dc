package stoneconnect

import (
	"crypto/tls"
	"log"
	"net/http"
	"time"

	"github.com/ernesto-jimenez/httplogger"
)

// newOwnedTransport builds the round tripper for a client-owned http session.
// Certificate verification is skipped on purpose: the heater presents a
// self-signed certificate on its local address.
func newOwnedTransport(reqLog *log.Logger) http.RoundTripper {
	var rt http.RoundTripper = &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	if reqLog != nil {
		rt = httplogger.NewLoggedTransport(rt, newHTTPLogger(reqLog))
	}
	return rt
}

type httpLogger struct {
	log *log.Logger
}

func newHTTPLogger(log *log.Logger) *httpLogger {
	return &httpLogger{
		log: log,
	}
}

func (l *httpLogger) LogRequest(req *http.Request) {
	l.log.Printf(
		"Request %s %s",
		req.Method,
		req.URL.String(),
	)
}

func (l *httpLogger) LogResponse(req *http.Request, res *http.Response, err error, duration time.Duration) {
	duration /= time.Millisecond
	if err != nil {
		l.log.Println(err)
	} else {
		l.log.Printf(
			"Response method=%s status=%d durationMs=%d %s",
			req.Method,
			res.StatusCode,
			duration,
			req.URL.String(),
		)
	}
}
