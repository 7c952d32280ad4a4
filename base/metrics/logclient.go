package metrics

import (
	"github.com/x-xyz/marketplace/base/log"
)

// LogClient stands in for the dogstatsd client when no agent is configured;
// every bump becomes a debug line.
type LogClient struct{}

var _ statsCli = (*LogClient)(nil)

func (lc *LogClient) emit(kind, name string, val interface{}, tags []string) error {
	log.Log().WithFields(log.Fields{"kind": kind, "key": name, "val": val, "tags": tags}).Debug("metric")
	return nil
}

func (lc *LogClient) Count(name string, value int64, tags []string, rate float64) error {
	return lc.emit("count", name, value, tags)
}

func (lc *LogClient) Histogram(name string, value float64, tags []string, rate float64) error {
	return lc.emit("histogram", name, value, tags)
}

// TimeInMilliseconds logs value in ms, as dogstatsd would record it.
func (lc *LogClient) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	return lc.emit("time_ms", name, value, tags)
}
