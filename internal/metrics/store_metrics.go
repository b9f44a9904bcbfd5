package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics counts storefront events. A nil *StoreMetrics is a no-op.
type StoreMetrics struct {
	checkouts     *prometheus.CounterVec
	cartAdds      prometheus.Counter
	catalogWrites *prometheus.CounterVec
}

func NewStoreMetrics() *StoreMetrics {
	return NewStoreMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewStoreMetricsWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &StoreMetrics{
		checkouts: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "gamestore_checkout_submissions_total",
			Help: "Checkout submissions by outcome",
		}, []string{"outcome"}),
		cartAdds: registerCounter(registerer, prometheus.CounterOpts{
			Name: "gamestore_cart_adds_total",
			Help: "Games added to session carts",
		}),
		catalogWrites: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "gamestore_catalog_writes_total",
			Help: "Admin catalog changes by operation",
		}, []string{"op"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := already.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func (m *StoreMetrics) RecordCheckout(outcome string) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(outcome).Inc()
}

func (m *StoreMetrics) RecordCartAdd() {
	if m == nil {
		return
	}
	m.cartAdds.Inc()
}

// RecordCatalogWrite takes "create", "update" or "delete".
func (m *StoreMetrics) RecordCatalogWrite(op string) {
	if m == nil {
		return
	}
	m.catalogWrites.WithLabelValues(op).Inc()
}
