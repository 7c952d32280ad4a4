/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"strings"
	"sync"
	"time"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// Config points the process at a dogstatsd agent. An empty Host keeps
// metrics in the debug log.
type Config struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	AppName string `mapstructure:"-"`
	EnvName string `mapstructure:"-"`
	PodName string `mapstructure:"-"`
}

var (
	setupMu   sync.Mutex
	setupConf = Config{Port: 8125}
)

// Setup configures the shared clients. Must run before the first Bump.
func Setup(cfg Config) {
	setupMu.Lock()
	defer setupMu.Unlock()
	if cfg.Port == 0 {
		cfg.Port = 8125
	}
	setupConf = cfg
}

func currentConf() Config {
	setupMu.Lock()
	defer setupMu.Unlock()
	return setupConf
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	return &Metrics{pkgName: pkgName}
}

// Metrics resolves its identity tags on first use, so package level clients
// created before Setup still carry them.
type Metrics struct {
	pkgName string
	once    sync.Once
	datadog DDMetrics
}

func (mt *Metrics) dd() *DDMetrics {
	mt.once.Do(func() {
		conf := currentConf()
		mt.datadog.ddTags = []string{
			// using host removes all tags associated with host
			// ref: https://docs.datadoghq.com/developers/dogstatsd/data_types/#host-tag-key
			"host:",
			"pod:" + conf.PodName,
			"env:" + conf.EnvName,
			"app:" + conf.AppName,
		}
	})
	return &mt.datadog
}

// bumpSumPanic records a panic raised while bumping; tags of the failed bump
// are folded into one tag value.
func (mt *Metrics) bumpSumPanic(key string, tags []string) {
	mt.dd().BumpSum(key, 1, 1, "tag", mt.pkgName+"#"+strings.Join(tags, "#"))
}

func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer func() {
		if err := recover(); err != nil {
			mt.bumpSumPanic("bumpsum.panic", append([]string{key}, tags...))
		}
	}()
	mt.dd().BumpSum(mt.pkgName+`.`+key, val, 1, tags...)
}

func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer func() {
		if err := recover(); err != nil {
			mt.bumpSumPanic("bumphistogram.panic", append([]string{key}, tags...))
		}
	}()
	mt.dd().BumpHistogram(mt.pkgName+`.`+key, val, 1, tags...)
}

// BumpTime starts a timer; call End on the result to record it:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		end: func(d time.Duration) {
			mt.dd().TimeInMilliseconds(mt.pkgName+`.`+key, d, 1, tags...)
		},
		panicHandler: func() {
			mt.bumpSumPanic("bumptime.panic", append([]string{key}, tags...))
		},
	}
}

type timeTracker struct {
	start        time.Time
	end          func(time.Duration)
	panicHandler func()
}

func (t *timeTracker) End() {
	defer func() {
		if err := recover(); err != nil {
			t.panicHandler()
		}
	}()
	t.end(time.Since(t.start))
}
