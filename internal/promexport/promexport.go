// Package promexport bridges an lgmp Metrics snapshot onto Prometheus
// collectors, for hosts that want /metrics scraped alongside their
// existing instrumentation.
package promexport

import "github.com/prometheus/client_golang/prometheus"

// Snapshot is the subset of lgmp.MetricsSnapshot this package depends
// on, expressed structurally so this package does not import the root
// package; cmd/shmq-host copies the fields across.
type Snapshot struct {
	QueuesRegistered             uint64
	PayloadBytesAllocated        uint64
	MessagesPosted               uint64
	MessagesDroppedNoSubscribers uint64
	PostQueueFull                uint64
	MessagesRetired              uint64
	SubscribersMarkedBad         uint64
	SubscribersReaped            uint64
}

// Collector adapts a snapshot-producing function to prometheus.Collector,
// so the host's own atomic counters stay the source of truth and this
// package only translates them on scrape.
type Collector struct {
	snapshot func() Snapshot

	queuesRegistered      *prometheus.Desc
	payloadBytesAllocated *prometheus.Desc
	messagesPosted        *prometheus.Desc
	messagesDropped       *prometheus.Desc
	postQueueFull         *prometheus.Desc
	messagesRetired       *prometheus.Desc
	subsMarkedBad         *prometheus.Desc
	subsReaped            *prometheus.Desc
}

// NewCollector builds a Collector that calls snapshot on every scrape.
func NewCollector(snapshot func() Snapshot) *Collector {
	ns := "lgmp"
	return &Collector{
		snapshot:              snapshot,
		queuesRegistered:      prometheus.NewDesc(ns+"_queues_registered", "Number of queues registered on this host.", nil, nil),
		payloadBytesAllocated: prometheus.NewDesc(ns+"_payload_bytes_allocated", "Bytes handed out by MemAlloc.", nil, nil),
		messagesPosted:        prometheus.NewDesc(ns+"_messages_posted_total", "Messages successfully posted.", nil, nil),
		messagesDropped:       prometheus.NewDesc(ns+"_messages_dropped_no_subscribers_total", "Posts dropped because no subscriber was live.", nil, nil),
		postQueueFull:         prometheus.NewDesc(ns+"_post_queue_full_total", "Posts rejected because the ring was full.", nil, nil),
		messagesRetired:       prometheus.NewDesc(ns+"_messages_retired_total", "Messages retired by the GC pass.", nil, nil),
		subsMarkedBad:         prometheus.NewDesc(ns+"_subscribers_marked_bad_total", "Subscribers flagged bad for exceeding MaxMessageAge.", nil, nil),
		subsReaped:            prometheus.NewDesc(ns+"_subscribers_reaped_total", "Bad subscribers reclaimed after MaxQueueTimeout.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.queuesRegistered
	ch <- c.payloadBytesAllocated
	ch <- c.messagesPosted
	ch <- c.messagesDropped
	ch <- c.postQueueFull
	ch <- c.messagesRetired
	ch <- c.subsMarkedBad
	ch <- c.subsReaped
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.snapshot()
	ch <- prometheus.MustNewConstMetric(c.queuesRegistered, prometheus.GaugeValue, float64(s.QueuesRegistered))
	ch <- prometheus.MustNewConstMetric(c.payloadBytesAllocated, prometheus.GaugeValue, float64(s.PayloadBytesAllocated))
	ch <- prometheus.MustNewConstMetric(c.messagesPosted, prometheus.CounterValue, float64(s.MessagesPosted))
	ch <- prometheus.MustNewConstMetric(c.messagesDropped, prometheus.CounterValue, float64(s.MessagesDroppedNoSubscribers))
	ch <- prometheus.MustNewConstMetric(c.postQueueFull, prometheus.CounterValue, float64(s.PostQueueFull))
	ch <- prometheus.MustNewConstMetric(c.messagesRetired, prometheus.CounterValue, float64(s.MessagesRetired))
	ch <- prometheus.MustNewConstMetric(c.subsMarkedBad, prometheus.CounterValue, float64(s.SubscribersMarkedBad))
	ch <- prometheus.MustNewConstMetric(c.subsReaped, prometheus.CounterValue, float64(s.SubscribersReaped))
}
