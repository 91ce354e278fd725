package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type ResponseInterceptor struct {
	writer http.ResponseWriter
	Status int
	Body   []byte
}

func NewResponseInterceptor(w http.ResponseWriter) *ResponseInterceptor {
	return &ResponseInterceptor{writer: w, Status: http.StatusOK}
}

func (r *ResponseInterceptor) WriteHeader(status int) {
	r.Status = status
	r.writer.WriteHeader(status)
}

// Write keeps the body of failed responses so it can be logged. Successful bodies can
// be whole label batches or workbooks and are not kept.
func (r *ResponseInterceptor) Write(b []byte) (int, error) {
	if r.Status/100 != 2 && r.Status/100 != 3 {
		r.Body = append(r.Body, b...)
	}
	return r.writer.Write(b)
}

func (r *ResponseInterceptor) Header() http.Header {
	return r.writer.Header()
}

func (r *ResponseInterceptor) Returned() string {
	if len(r.Body) > 0 {
		return fmt.Sprintf("%d %s", r.Status, string(r.Body))
	}

	return fmt.Sprintf("%d", r.Status)
}

func (r *ResponseInterceptor) IsSystemError() bool {
	return r.Status/100 == 5
}

func Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		interceptor := NewResponseInterceptor(w)
		start := time.Now()
		logrus.Debugf("Request %s %s started.", r.Method, r.URL.Path)
		next.ServeHTTP(interceptor, r)
		elapsed := time.Since(start).Round(time.Millisecond)
		if interceptor.IsSystemError() {
			logrus.Errorf("Request %s %s returned %s after %s", r.Method, r.URL.Path, interceptor.Returned(), elapsed)
		} else {
			logrus.Debugf("Request %s %s returned %s after %s", r.Method, r.URL.Path, interceptor.Returned(), elapsed)
		}
	})
}
