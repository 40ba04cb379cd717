package services

import "github.com/prometheus/client_golang/prometheus"

// Reply outcomes recorded by chatbotReplies.
const (
	outcomeMatched  = "matched"
	outcomeFallback = "fallback"
	outcomeDisabled = "disabled"
	outcomeReplayed = "replayed"
)

var (
	// chatbotReplies counts chat replies by outcome.
	chatbotReplies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_replies_total",
			Help: "Chat replies by outcome (matched, fallback, disabled, replayed).",
		},
		[]string{"outcome"},
	)

	// chatLogFailures counts replies whose turn could not be logged.
	chatLogFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbot_log_failures_total",
			Help: "Chat turns that failed to be written to the chat log.",
		},
	)
)

func init() {
	prometheus.MustRegister(chatbotReplies, chatLogFailures)
}

func countReply(r *Reply) {
	switch {
	case r.Disabled:
		chatbotReplies.WithLabelValues(outcomeDisabled).Inc()
	case r.Matched:
		chatbotReplies.WithLabelValues(outcomeMatched).Inc()
	default:
		chatbotReplies.WithLabelValues(outcomeFallback).Inc()
	}
}
