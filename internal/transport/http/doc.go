// Package http provides the HTTP transport layer for the seasonal
// adjustment service: the chi router, the adjustment handler, and the
// health handler.
package http
