package usecase

import (
	"github.com/x-xyz/marketplace/base/ctx"
	hcdomain "github.com/x-xyz/marketplace/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{repo: repo}
}

// Check reports the store status; the report is filled in even when the ping
// fails.
func (im *impl) Check(context ctx.Ctx) (*hcdomain.Report, error) {
	status, err := im.repo.PingDB(context)
	report := &hcdomain.Report{Healthy: "ok", Store: status}
	if err != nil {
		report.Healthy = "down"
		return report, err
	}
	return report, nil
}
