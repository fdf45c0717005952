/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/x-xyz/escrowapi/base/env"
)

const (
	// TagValueNA is used for tags whose values are not available.
	TagValueNA = "n/a"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	withPodName bool
}

// WithoutPodName drops the pod tag from every metric sent by the Service
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// New creates a metric client with package name as prefix
func New(pkgName string, options ...Option) Service {
	o := opt{
		withPodName: true,
	}
	for _, option := range options {
		option(&o)
	}

	// "host:" removes the host tag datadog attaches by default
	tags := []string{"host:"}
	if o.withPodName {
		tags = append(tags, "pod:"+env.PodName())
	}
	tags = append(tags,
		"env:"+viper.GetString("env_name"),
		"app:"+viper.GetString("app_name"),
	)

	return &Metrics{
		pkgName: pkgName,
		backend: &ddMetrics{ddTags: tags},
	}
}

// Metrics prefixes every key with the package name and forwards to the statsd backend
type Metrics struct {
	pkgName string
	backend *ddMetrics
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + "." + key
}

func (mt *Metrics) recoverPanic(typ, key string, tags []string) {
	if err := recover(); err != nil {
		mt.backend.bumpSum(typ+".panic", 1, "tag", mt.key(key)+"#"+strings.Join(tags, "#"))
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumpavg", key, tags)
	mt.backend.bumpAvg(mt.key(key), val, tags...)
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumpsum", key, tags)
	mt.backend.bumpSum(mt.key(key), val, tags...)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumphistogram", key, tags)
	mt.backend.bumpHistogram(mt.key(key), val, tags...)
}

// BumpTime starts a timer and returns a value on which End() stops it:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	defer mt.recoverPanic("bumptime", key, tags)
	return mt.backend.bumpTime(mt.key(key), tags...)
}
