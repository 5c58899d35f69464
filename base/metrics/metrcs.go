/*Package metrics wraps datadog-go to record service metrics.
Naming convention:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/x-xyz/swiftbid/base/env"
)

const (
	// TagValueNA is used for tags whose values are not available.
	TagValueNA = "n/a"
)

// Ender is returned by BumpTime
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
	sampleRate  float64
}

// WithoutPodName drops the pod tag, which keeps the number of custom metrics low
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// WithSampleRate sets the rate (0, 1] at which bumps are forwarded
func WithSampleRate(rate float64) Option {
	return func(o *opt) {
		o.sampleRate = rate
	}
}

// New creates a metric client that prefixes every key with pkgName
func New(pkgName string, options ...Option) Service {
	o := opt{
		withPodName: true,
		sampleRate:  1.0,
	}
	for _, option := range options {
		option(&o)
	}

	ddTags := []string{
		// an empty host tag removes the tags datadog attaches per host
		"host:",
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	if o.withPodName {
		ddTags = append(ddTags, "pod:"+env.PodName())
	}

	return &Metrics{
		pkgName:    pkgName,
		sampleRate: o.sampleRate,
		datadog: DDMetrics{
			ddTags: ddTags,
		},
	}
}

// Metrics forwards bumps to datadog with the package prefix
type Metrics struct {
	pkgName    string
	sampleRate float64
	datadog    DDMetrics
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + "." + key
}

// recoverPanic turns a panicking bump (inconsistent tags) into a counter
func (mt *Metrics) recoverPanic(name, key string, tags []string) {
	if err := recover(); err != nil {
		mt.datadog.BumpSum(name, 1, 1, "tag", mt.key(key)+"#"+strings.Join(tags, "#"))
	}
}

func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumpavg.panic", key, tags)
	mt.datadog.BumpAvg(mt.key(key), val, mt.sampleRate, tags...)
}

func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumpsum.panic", key, tags)
	mt.datadog.BumpSum(mt.key(key), val, mt.sampleRate, tags...)
}

func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumphistogram.panic", key, tags)
	mt.datadog.BumpHistogram(mt.key(key), val, mt.sampleRate, tags...)
}

// BumpTime starts a timer, End() records it:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) (e Ender) {
	e = nopEnder{}
	defer mt.recoverPanic("bumptime.panic", key, tags)
	return mt.datadog.BumpTime(mt.key(key), mt.sampleRate, tags...)
}

type nopEnder struct{}

func (nopEnder) End() {}

// Nop discards every bump
type Nop struct{}

func (Nop) BumpAvg(key string, val float64, tags ...string)       {}
func (Nop) BumpSum(key string, val float64, tags ...string)       {}
func (Nop) BumpHistogram(key string, val float64, tags ...string) {}
func (Nop) BumpTime(key string, tags ...string) Ender             { return nopEnder{} }
