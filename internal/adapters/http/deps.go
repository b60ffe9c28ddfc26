package http

import (
	"github.com/nats-io/nats.go"

	"jobsight/internal/adapters/valkey"
	"jobsight/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Dashboard *usecases.DashboardService
	NATS      *nats.Conn
	Cache     *valkey.Cache
}
