package metrics

import (
	"github.com/x-xyz/escrowapi/base/log"
)

var _ statsCli = (*LogClient)(nil)

// LogClient writes metrics to the debug log. It is the backend when no
// datadog agent is configured.
type LogClient struct{}

func (lc *LogClient) write(kind, name string, value interface{}, tags []string) error {
	log.Log().WithFields(log.Fields{"kind": kind, "key": name, "val": value, "tags": tags}).Debug("metric")
	return nil
}

func (lc *LogClient) Gauge(name string, value float64, tags []string, rate float64) error {
	return lc.write("gauge", name, value, tags)
}

func (lc *LogClient) Count(name string, value int64, tags []string, rate float64) error {
	return lc.write("count", name, value, tags)
}

func (lc *LogClient) Histogram(name string, value float64, tags []string, rate float64) error {
	return lc.write("histogram", name, value, tags)
}

func (lc *LogClient) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	return lc.write("time_ms", name, value, tags)
}
