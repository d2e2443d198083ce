package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func museumLatencyBounds(registry *prometheus.Registry) []float64 {
	families, err := registry.Gather()
	So(err, ShouldBeNil)
	for _, f := range families {
		if !strings.HasSuffix(f.GetName(), "museum_request_latency_milliseconds") {
			continue
		}
		var bounds []float64
		for _, b := range f.GetMetric()[0].GetHistogram().GetBucket() {
			bounds = append(bounds, b.GetUpperBound())
		}
		return bounds
	}
	return nil
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then every metric is registered under the namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.cacheHits.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(f.GetName(), ShouldStartWith, "test_unit_")
				}
			})

			Convey("And the museum latency histogram uses the configured buckets", func() {
				manager.museumRequestLatency.Observe(2)
				So(museumLatencyBounds(registry), ShouldResemble, []float64{1, 2, 3})
			})
		})

		Convey("When no buckets are configured", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))
			manager.museumRequestLatency.Observe(42)

			Convey("Then the museum latency histogram keeps the millisecond defaults", func() {
				So(museumLatencyBounds(registry), ShouldResemble, []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000})
			})
		})

		Convey("When registering twice on the same registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then promauto panics on the duplicate", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording cache outcomes", func() {
			hits := testutil.ToFloat64(globalManager.cacheHits)
			misses := testutil.ToFloat64(globalManager.cacheMisses)
			RecordCacheHit()
			RecordCacheHit()
			RecordCacheMiss()
			UpdateCacheEntries(7)

			Convey("Then counters and gauges move", func() {
				So(testutil.ToFloat64(globalManager.cacheHits), ShouldEqual, hits+2)
				So(testutil.ToFloat64(globalManager.cacheMisses), ShouldEqual, misses+1)
				So(testutil.ToFloat64(globalManager.cacheEntries), ShouldEqual, 7)
			})
		})

		Convey("When recording fact lookups and defaults", func() {
			before := testutil.ToFloat64(globalManager.factDefaultsApplied.WithLabelValues("dated"))
			RecordFactLookup("dated", "ok")
			RecordFactDefault("dated")

			Convey("Then the per-fact series are updated", func() {
				So(testutil.ToFloat64(globalManager.factDefaultsApplied.WithLabelValues("dated")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.factLookups.WithLabelValues("dated", "ok")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording HTTP, museum and system metrics", func() {
			So(func() {
				RecordHTTPRequest("medium", "POST", "200")
				RecordHTTPRequestDuration("medium", "POST", "200", 12)
				RecordErrorByEndpoint("medium", "upstream")
				RecordErrorByType("upstream")
				RecordMuseumRequest("ok", 80)
				RecordMuseumSharedRequest()
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)

			Convey("Then the registry exposes them", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["museumguide_facts_http_requests_total"], ShouldBeTrue)
				So(names["museumguide_facts_museum_requests_total"], ShouldBeTrue)
				So(names["museumguide_facts_system_goroutine_count"], ShouldBeTrue)
			})
		})
	})
}
