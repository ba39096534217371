package server

const (
	RouteHealth = "/healthz"

	HeaderRequestID = "X-Request-ID"
)
