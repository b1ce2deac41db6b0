package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// BookingUserAgent is the browser identity presented to the booking site,
// both by the headless session and by the API calls that reuse its cookies.
const BookingUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// HTTPClientFactory creates optimized HTTP clients with standardized configuration
type HTTPClientFactory struct {
	defaultTimeout time.Duration
	mutex          sync.RWMutex
	clients        map[string]*http.Client
}

// NewHTTPClientFactory creates a new HTTP client factory
func NewHTTPClientFactory(defaultTimeout time.Duration) *HTTPClientFactory {
	return &HTTPClientFactory{
		defaultTimeout: defaultTimeout,
		clients:        make(map[string]*http.Client),
	}
}

// CreateOptimizedHTTPClient creates an HTTP client with connection pooling and optimized settings
func (f *HTTPClientFactory) CreateOptimizedHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = f.defaultTimeout
	}

	clientKey := fmt.Sprintf("timeout_%d", timeout.Milliseconds())

	f.mutex.RLock()
	if client, exists := f.clients[clientKey]; exists {
		f.mutex.RUnlock()
		return client
	}
	f.mutex.RUnlock()

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,

			DisableKeepAlives: false,

			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,

			DisableCompression: false,
		},
	}

	f.mutex.Lock()
	f.clients[clientKey] = client
	f.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"component":  "HTTPClientFactory",
		"timeout":    timeout,
		"client_key": clientKey,
	}).Debug("Created new optimized HTTP client")

	return client
}

// SetBookingAPIHeaders configures request headers to mimic the booking site's
// own front end. siteOrigin is the scheme+host of the airline site; it feeds
// both the Origin and Referer headers. Headers are rebuilt per request, there
// is no shared header state between calls.
func SetBookingAPIHeaders(request *http.Request, siteOrigin string) {
	request.Header.Set("User-Agent", BookingUserAgent)
	request.Header.Set("Accept", "application/json, text/plain, */*")
	request.Header.Set("Accept-Language", "en-US")
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Origin", siteOrigin)
	request.Header.Set("Referer", siteOrigin+"/")
	request.Header.Set("Priority", "u=1, i")
	request.Header.Set("Sec-Ch-Ua", `"Chromium";v="142", "Google Chrome";v="142", "Not_A Brand";v="99"`)
}

// ExecuteJSONRequestWithRetry sends a JSON request with bounded exponential
// backoff retries and decodes the successful response body into result. The
// request is rebuilt on every attempt so the body can be re-sent. Session
// cookies are attached to each attempt. A non-200 status or transport error
// triggers a retry; after exhausting maxRetryAttempts retries the call fails
// with a TRANSPORT_EXHAUSTED service error.
func ExecuteJSONRequestWithRetry(client *http.Client, method, url string, body []byte, siteOrigin string, cookies map[string]string, maxRetryAttempts int, result interface{}) error {
	logger := logrus.WithFields(logrus.Fields{
		"component": "HTTPClientFactory",
		"method":    method,
		"url":       url,
	})

	var lastExecutionError error

	for attemptNumber := 0; attemptNumber <= maxRetryAttempts; attemptNumber++ {
		if attemptNumber > 0 {
			// Exponential backoff with jitter to avoid hammering the API in lockstep
			baseBackoffDuration := time.Duration(1<<uint(attemptNumber-1)) * time.Second
			jitterDuration := time.Duration(float64(baseBackoffDuration) * 0.1 * (0.5 + 0.5*float64(attemptNumber%3)/2))
			totalBackoffDuration := baseBackoffDuration + jitterDuration

			logger.WithFields(logrus.Fields{
				"attempt":          attemptNumber + 1,
				"backoff_duration": totalBackoffDuration,
			}).Debug("Retrying HTTP request after backoff")

			time.Sleep(totalBackoffDuration)
		}

		request, err := http.NewRequest(method, url, bytes.NewReader(body))
		if err != nil {
			return WrapError(err, ErrorCategoryConfiguration, CodeTransportExhausted, "HTTPClientFactory", "ExecuteJSONRequestWithRetry", false)
		}
		SetBookingAPIHeaders(request, siteOrigin)
		for name, value := range cookies {
			request.AddCookie(&http.Cookie{Name: name, Value: value})
		}

		httpResponse, executionError := client.Do(request)
		if executionError == nil && httpResponse.StatusCode == http.StatusOK {
			decodeError := json.NewDecoder(httpResponse.Body).Decode(result)
			httpResponse.Body.Close()
			if decodeError != nil {
				// A 200 with an undecodable body is not worth retrying
				return NewServiceError(ErrorCategoryProcessing, CodeEmptyResponse,
					fmt.Sprintf("failed to decode response body from %s: %v", url, decodeError),
					"HTTPClientFactory", "ExecuteJSONRequestWithRetry", false, decodeError)
			}

			logger.WithFields(logrus.Fields{
				"attempt":     attemptNumber + 1,
				"status_code": httpResponse.StatusCode,
			}).Debug("HTTP request successful")
			return nil
		}

		if executionError != nil {
			lastExecutionError = fmt.Errorf("attempt %d failed with network error: %w", attemptNumber+1, executionError)
			logger.WithError(lastExecutionError).Debug("HTTP request failed with network error")
		} else {
			lastExecutionError = fmt.Errorf("attempt %d failed with HTTP %d: %s", attemptNumber+1, httpResponse.StatusCode, http.StatusText(httpResponse.StatusCode))
			logger.WithFields(logrus.Fields{
				"attempt":     attemptNumber + 1,
				"status_code": httpResponse.StatusCode,
			}).Debug("HTTP request failed with non-200 status")
			io.Copy(io.Discard, httpResponse.Body)
			httpResponse.Body.Close()
		}
	}

	totalAttempts := maxRetryAttempts + 1
	logger.WithFields(logrus.Fields{
		"total_attempts": totalAttempts,
		"final_error":    lastExecutionError,
	}).Error("HTTP request failed after all retry attempts")

	return NewServiceError(ErrorCategoryNetwork, CodeTransportExhausted,
		fmt.Sprintf("HTTP request to %s failed after %d attempts: %v", url, totalAttempts, lastExecutionError),
		"HTTPClientFactory", "ExecuteJSONRequestWithRetry", false, lastExecutionError)
}

// CleanupHTTPClient properly closes and cleans up HTTP client resources
func (f *HTTPClientFactory) CleanupHTTPClient(client *http.Client) {
	if client != nil && client.Transport != nil {
		if transport, ok := client.Transport.(*http.Transport); ok {
			transport.CloseIdleConnections()
		}
	}
}

// CleanupAllClients cleans up all cached HTTP clients
func (f *HTTPClientFactory) CleanupAllClients() {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	for key, client := range f.clients {
		f.CleanupHTTPClient(client)
		delete(f.clients, key)
	}
}
