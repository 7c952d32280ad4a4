package healthcheck

import (
	"github.com/x-xyz/marketplace/base/ctx"
)

// StoreStatus is the outcome of one store ping.
type StoreStatus struct {
	Driver    string `json:"driver"`
	LatencyMs int64  `json:"latencyMs"`
}

type Report struct {
	Healthy string      `json:"healthy"`
	Store   StoreStatus `json:"store"`
}

type HealthCheckUsecase interface {
	Check(context ctx.Ctx) (*Report, error)
}

type HealthCheckRepo interface {
	PingDB(context ctx.Ctx) (StoreStatus, error)
}

// Pinger is implemented by every store driver.
type Pinger interface {
	Ping(context ctx.Ctx) error
}
