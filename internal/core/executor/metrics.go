package executor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "banking_service",
			Name:      "transactions_processed_total",
			Help:      "Total number of processed transactions by outcome.",
		},
		[]string{"outcome"},
	)

	transactionRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "banking_service",
			Name:      "transaction_retries_total",
			Help:      "Total number of retried transaction attempts after transient errors.",
		},
	)

	deadLetters = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "banking_service",
			Name:      "dead_letters_total",
			Help:      "Total number of messages written to the dead-letter table.",
		},
	)
)
