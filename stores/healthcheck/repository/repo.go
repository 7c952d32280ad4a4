package repository

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	hcdomain "github.com/x-xyz/marketplace/domain/healthcheck"
)

const pingTimeout = 2 * time.Second

type impl struct {
	store  hcdomain.Pinger
	driver string
	now    func() time.Time
}

// New creates a HealthCheckRepo pinging the configured store driver.
func New(store hcdomain.Pinger, driver string) hcdomain.HealthCheckRepo {
	return &impl{
		store:  store,
		driver: driver,
		now:    time.Now,
	}
}

func (im *impl) PingDB(context ctx.Ctx) (hcdomain.StoreStatus, error) {
	status := hcdomain.StoreStatus{Driver: im.driver}

	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()

	start := im.now()
	err := im.store.Ping(ctx)
	status.LatencyMs = im.now().Sub(start).Milliseconds()
	if err != nil {
		context.WithFields(log.Fields{"err": err, "driver": im.driver, "latencyMs": status.LatencyMs}).Error("ping store error")
		return status, err
	}
	return status, nil
}
