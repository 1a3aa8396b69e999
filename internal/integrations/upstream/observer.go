package upstream

import (
	"net/http"
	"strconv"
	"time"
)

// Observer получатель метрик вызовов внешних сервисов
type Observer interface {
	ObserveUpstream(upstream, operation, status string, seconds float64)
}

// Do выполняет запрос и передает длительность и статус в observer (если он задан)
func Do(client *http.Client, req *http.Request, observer Observer, service, operation string) (*http.Response, error) {
	start := time.Now()
	resp, err := client.Do(req)
	if observer != nil {
		status := "error"
		if err == nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		observer.ObserveUpstream(service, operation, status, time.Since(start).Seconds())
	}
	return resp, err
}

// IsSuccess статус 2xx
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
