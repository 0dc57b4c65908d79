package controller

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Logger is the logging surface used by resources.
type Logger interface {
	Info(args ...interface{})
	Error(args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(...interface{})  {}
func (nopLogger) Error(...interface{}) {}

// RequestLogger logs every API request: server address, method, full URL
// and, for POST and PUT, the request body.
func RequestLogger(log Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		line := "API Request - " + serverAddr(c.Request) + " - " + c.Request.Method + " - " + fullURL(c.Request)

		if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
			if body := peekBody(c.Request); body != "" {
				line += " - " + body
			}
		}

		log.Info(line)
		c.Next()
	}
}

func serverAddr(r *http.Request) string {
	if addr, ok := r.Context().Value(http.LocalAddrContextKey).(net.Addr); ok {
		if host, _, err := net.SplitHostPort(addr.String()); err == nil {
			return host
		}
		return addr.String()
	}
	return ""
}

func fullURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

// peekBody reads the body and puts it back for the handlers.
func peekBody(r *http.Request) string {
	if r.Body == nil {
		return ""
	}

	raw, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
