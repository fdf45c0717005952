package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/escrowapi/base/log"
)

const (
	ddClientsSize    = 16 // needs to be 2^n
	ddClientsIdxMask = ddClientsSize - 1

	// ddRate is the rate to pass metrics to datadog agent. 1 means always
	ddRate = 1
	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
)

var (
	initOnce = sync.Once{}

	// DdPort is the statsd agent port
	DdPort = 8125

	ddClientsIdx = int32(0)
	ddClients    []statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// initClients connects to the datadog agent at datadog_host. Without a host
// every metric is written to the debug log instead.
func initClients() {
	host := viper.GetString("datadog_host")
	ddClients = make([]statsCli, ddClientsSize)
	for i := 0; i < ddClientsSize; i++ {
		if host == "" {
			ddClients[i] = &LogClient{}
			continue
		}

		// one buffered client per slot so the buffer is counted together
		addr := fmt.Sprintf("%s:%d", host, DdPort)
		cli, err := statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
		}
		ddClients[i] = cli
	}
	log.Log().WithFields(log.Fields{"host": host, "clients": ddClientsSize}).Info("metrics clients initialized")
}

func nextClient() statsCli {
	initOnce.Do(initClients)
	i := atomic.AddInt32(&ddClientsIdx, 1) & ddClientsIdxMask
	return ddClients[i]
}

type ddMetrics struct {
	ddTags []string
}

func (dm *ddMetrics) tags(tags []string) []string {
	res := make([]string, 0, len(dm.ddTags)+len(tags)/2)
	res = append(res, dm.ddTags...)
	return append(res, parseTag(tags)...)
}

func (dm *ddMetrics) logFail(err error, key string, val interface{}, fn string) {
	log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": fn}).Error("Bump fail")
}

// datadog has no plain average, a gauge is the closest
func (dm *ddMetrics) bumpAvg(key string, val float64, tags ...string) {
	if err := nextClient().Gauge(key, val, dm.tags(tags), ddRate); err != nil {
		dm.logFail(err, key, val, "BumpAvg")
	}
}

func (dm *ddMetrics) bumpSum(key string, val float64, tags ...string) {
	if err := nextClient().Count(key, int64(val), dm.tags(tags), ddRate); err != nil {
		dm.logFail(err, key, val, "BumpSum")
	}
}

func (dm *ddMetrics) bumpHistogram(key string, val float64, tags ...string) {
	if err := nextClient().Histogram(key, val, dm.tags(tags), ddRate); err != nil {
		dm.logFail(err, key, val, "BumpHistogram")
	}
}

func (dm *ddMetrics) bumpTime(key string, tags ...string) Ender {
	return &ddTimeTracker{
		dm:    dm,
		start: time.Now(),
		key:   key,
		tags:  dm.tags(tags),
	}
}

func parseTag(tags []string) []string {
	if tags == nil {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}

type ddTimeTracker struct {
	dm    *ddMetrics
	start time.Time
	key   string
	tags  []string
}

func (dt *ddTimeTracker) End() {
	dur := float64(time.Since(dt.start)) / float64(time.Millisecond)
	if err := nextClient().TimeInMilliseconds(dt.key, dur, dt.tags, ddRate); err != nil {
		dt.dm.logFail(err, dt.key, dur, "BumpTime")
	}
}
