package restapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tasklist/internal/metrics"
)

// RequestIDHeader carries a fresh id on every outgoing request.
const RequestIDHeader = "X-Request-ID"

// Transport tags, logs and measures each request before handing it to Base.
type Transport struct {
	// Base performs the request. Nil means http.DefaultTransport.
	Base http.RoundTripper

	Logger *logrus.Logger

	// Metrics is optional.
	Metrics *metrics.Metrics
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set(RequestIDHeader, requestID)

	logEntry := t.Logger.WithFields(logrus.Fields{
		"component":  "rest_client",
		"request_id": requestID,
		"method":     req.Method,
		"path":       req.URL.Path,
	})
	logEntry.Debug("request started")

	var record func(int)
	if t.Metrics != nil {
		record = t.Metrics.Start(req.Method, req.URL.Path)
	}

	start := time.Now()
	resp, err := t.base().RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		if record != nil {
			record(0)
		}
		logEntry.WithError(err).WithField("duration_ms", duration.Milliseconds()).Debug("request failed")
		return nil, err
	}

	if record != nil {
		record(resp.StatusCode)
	}
	logEntry.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	}).Debug("request completed")
	return resp, nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
