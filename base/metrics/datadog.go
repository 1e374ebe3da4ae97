package metrics

import (
	"time"

	"github.com/DataDog/datadog-go/statsd"

	"github.com/rsandx/oasis-nft-port/base/log"
)

type datadogService struct {
	client *statsd.Client
}

func newDatadog(pkgName, addr string) Service {
	client, err := statsd.New(addr, statsd.WithNamespace(pkgName+"."))
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Warn("statsd dial failed, metrics disabled")
		return &nopService{}
	}
	return &datadogService{client: client}
}

// tags are alternating key/value strings at the call sites; statsd wants
// "key:value" pairs.
func makeTags(tags []string) []string {
	res := make([]string, 0, (len(tags)+1)/2)
	for i := 0; i+1 < len(tags); i += 2 {
		res = append(res, tags[i]+":"+tags[i+1])
	}
	if len(tags)%2 == 1 {
		res = append(res, tags[len(tags)-1]+":"+TagValueNA)
	}
	return res
}

func (s *datadogService) BumpAvg(key string, val float64, tags ...string) {
	_ = s.client.Gauge(key, val, makeTags(tags), 1)
}

func (s *datadogService) BumpSum(key string, val float64, tags ...string) {
	_ = s.client.Count(key, int64(val), makeTags(tags), 1)
}

func (s *datadogService) BumpHistogram(key string, val float64, tags ...string) {
	_ = s.client.Histogram(key, val, makeTags(tags), 1)
}

func (s *datadogService) BumpTime(key string, tags ...string) Ender {
	return &timeEnder{
		start: time.Now(),
		end: func(elapsed time.Duration) {
			_ = s.client.Timing(key, elapsed, makeTags(tags), 1)
		},
	}
}
