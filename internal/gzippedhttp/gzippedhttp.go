// Package gzippedhttp compresses HTTP responses for clients that accept
// gzip encoding.
package gzippedhttp

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"
)

var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		w, _ := gzip.NewWriterLevel(nil, gzip.BestSpeed)
		return w
	},
}

type compressedResponseWriter struct {
	http.ResponseWriter
	zw *gzip.Writer
}

func (c *compressedResponseWriter) WriteHeader(statusCode int) {
	// Every write goes through the gzip writer, so the header must be set
	// whatever the status is.
	c.Header().Set("Content-Encoding", "gzip")
	c.ResponseWriter.WriteHeader(statusCode)
}

func (c *compressedResponseWriter) Write(p []byte) (int, error) {
	return c.zw.Write(p)
}

func (c *compressedResponseWriter) close() error {
	err := c.zw.Close()
	gzipWriterPool.Put(c.zw)
	return err
}

// GzipResponse compresses the response body when the request's
// Accept-Encoding header allows gzip.
func GzipResponse(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		if !strings.Contains(request.Header.Get("Accept-Encoding"), "gzip") {
			h.ServeHTTP(response, request)
			return
		}

		zw := gzipWriterPool.Get().(*gzip.Writer)
		zw.Reset(response)
		compressed := &compressedResponseWriter{
			ResponseWriter: response,
			zw:             zw,
		}
		defer compressed.close()

		h.ServeHTTP(compressed, request)
	}

	return http.HandlerFunc(middleware)
}
