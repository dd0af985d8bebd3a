// Package middleware provides HTTP middleware for the gallery server:
// request logging with log-injection sanitization, Prometheus request
// metrics, and gzip compression for text responses.
package middleware
