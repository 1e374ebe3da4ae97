/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"time"

	"github.com/spf13/viper"
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

// New creates a metric client with package name as prefix. Without a
// configured statsd address all bumps are no-ops.
func New(pkgName string) Service {
	addr := viper.GetString("datadog.addr")
	if addr == "" {
		return &nopService{}
	}
	return newDatadog(pkgName, addr)
}

type nopService struct{}

func (s *nopService) BumpAvg(key string, val float64, tags ...string)       {}
func (s *nopService) BumpSum(key string, val float64, tags ...string)       {}
func (s *nopService) BumpHistogram(key string, val float64, tags ...string) {}

func (s *nopService) BumpTime(key string, tags ...string) Ender {
	return &nopEnder{}
}

type nopEnder struct{}

func (e *nopEnder) End() {}

type timeEnder struct {
	start time.Time
	end   func(elapsed time.Duration)
}

func (e *timeEnder) End() {
	e.end(time.Since(e.start))
}
