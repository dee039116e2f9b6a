package metrics_test

import (
	"testing"

	"github.com/hooprank/hooprank/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithRegistry(reg), metrics.WithNamespace("test"))

		Convey("Then construction registers without panicking", func() {
			So(m, ShouldNotBeNil)
		})

		Convey("Then the registry gathers the registered families", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			// Vec metrics only appear after first use; the plain
			// counters, gauges, and histograms are present immediately.
			So(len(families), ShouldBeGreaterThan, 10)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the helpers do not panic", func() {
			So(func() {
				metrics.RecordSubmissionProcessed()
				metrics.RecordSubmissionDuplicate()
				metrics.RecordIngestError()
				metrics.RecordNormalizationDuration(1.5)
				metrics.RecordAggregationDuration(0.5)
				metrics.RecordRerank()
				metrics.UpdateRosterSize(12)
				metrics.UpdateQueueSize(3)
				metrics.UpdateQueueCapacity(100)
				metrics.UpdateQueueUtilization(0.03)
				metrics.RecordQueueEnqueue()
				metrics.RecordQueueDequeue()
				metrics.RecordQueueEnqueueError()
				metrics.UpdateWorkerCount(4)
				metrics.RecordWorkerProcessingLatency(2.0)
				metrics.RecordWorkerError()
				metrics.RecordHTTPRequest("rankings", "GET", "200")
				metrics.RecordHTTPRequestDuration("rankings", "GET", "200", 1.0)
			}, ShouldNotPanic)
		})

		Convey("Then the registry is exposed for the health endpoint", func() {
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})
	})
}
