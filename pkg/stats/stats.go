package stats

import (
	"bufio"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	BYTE = 1 << (10 * iota)
	KILOBYTE
	MEGABYTE
	GIGABYTE
)

var (
	walletOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sweepr",
			Name:      "wallet_outcomes_total",
			Help:      "Number of wallets that reached each final state.",
		},
		[]string{"state"},
	)
	chainRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sweepr",
			Name:      "chain_request_duration_seconds",
			Help:      "Duration of the requests made to the chain data provider.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "result"},
	)
)

func init() {
	prometheus.MustRegister(walletOutcomes, chainRequestDuration)
}

// RecordWalletOutcome counts a wallet that ended a run in the given state.
func RecordWalletOutcome(state string) {
	walletOutcomes.WithLabelValues(state).Inc()
}

// ObserveChainRequest records the duration of a request to the given
// provider endpoint started at the given time.
func ObserveChainRequest(endpoint string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	chainRequestDuration.
		WithLabelValues(endpoint, result).
		Observe(time.Since(start).Seconds())
}

// toMegabytes returns given memory in bytes to megabytes.
func toMegabytes(bytes uint64) float64 {
	return float64(bytes) / MEGABYTE
}

// PrintMemoryStatistics prints memory statistics using go runtime library.
func PrintMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Debugf(
		"Total allocated: %.3fMB, Heap allocated: %.3fMB, "+
			"Allocated objects count: %v, Freed objects count: %v, "+
			"Num of go routines: %v",
		toMegabytes(memStats.TotalAlloc),
		toMegabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
		runtime.NumGoroutine(),
	)
}

// DumpPrometheusDefaults appends the gathered Prometheus metrics to the
// given file.
func DumpPrometheusDefaults(path string) error {
	file, err := os.OpenFile(
		path,
		os.O_APPEND|os.O_CREATE|os.O_RDWR,
		0644,
	)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	metricFamily, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}

	return writer.Flush()
}
