package http

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route paths served by NewRouter
const (
	FormPath    = "/api/form"
	HealthPath  = "/health/live"
	OpenAPIPath = "/api/openapi.json"
	MetricsPath = "/metrics"
)

// RouterOptions selects the optional routes
type RouterOptions struct {
	OpenAPI       *openapi3.T
	EnableMetrics bool
}

// NewRouter registers every route on a fresh mux
func NewRouter(h *Handler, opts RouterOptions) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	mux.HandleFunc(FormPath, h.SubmitForm)
	mux.HandleFunc(HealthPath, h.HealthCheck)

	if opts.OpenAPI != nil {
		docs, err := OpenAPIHandler(opts.OpenAPI)
		if err != nil {
			return nil, err
		}
		mux.HandleFunc(OpenAPIPath, docs)
	}

	if opts.EnableMetrics {
		mux.Handle(MetricsPath, promhttp.Handler())
	}

	return mux, nil
}
