package testingx

import (
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/postmarkgo/postmark/internal/model"
	"github.com/postmarkgo/postmark/internal/runtimex"
)

// HTTPProxy is an HTTP/HTTPS forward proxy used to check that clients
// honour their proxy configuration.
//
// This struct methods panics for several errors. Only use for testing purposes!
type HTTPProxy struct {
	// Logger is the OPTIONAL logger to use.
	Logger model.Logger

	// requests counts the requests we received.
	requests atomic.Int64
}

var _ http.Handler = &HTTPProxy{}

// Requests returns the number of requests we received.
func (hp *HTTPProxy) Requests() int64 {
	return hp.requests.Load()
}

// ServeHTTP implements http.Handler.
func (hp *HTTPProxy) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	hp.requests.Add(1)
	logger := model.ValidLoggerOrDefault(hp.Logger)
	logger.Infof("PROXY: %s %s", req.Method, req.URL)

	if req.Method == http.MethodConnect {
		hp.connect(rw, req)
		return
	}
	hp.forward(rw, req, logger)
}

func (hp *HTTPProxy) connect(rw http.ResponseWriter, req *http.Request) {
	sconn, err := net.Dial("tcp", req.Host)
	if err != nil {
		rw.WriteHeader(http.StatusBadGateway)
		return
	}
	defer sconn.Close()

	hijacker := rw.(http.Hijacker)
	cconn, buffered := runtimex.Try2(hijacker.Hijack())
	runtimex.Assert(buffered.Reader.Buffered() <= 0, "data before finishing HTTP handshake")
	defer cconn.Close()

	_, _ = cconn.Write([]byte("HTTP/1.1 200 Ok\r\n\r\n"))

	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(sconn, cconn)
	}()
	go func() {
		defer wg.Done()
		_, _ = io.Copy(cconn, sconn)
	}()
	wg.Wait()
}

func (hp *HTTPProxy) forward(rw http.ResponseWriter, req *http.Request, logger model.Logger) {
	// reject requests that already visited the proxy and requests we cannot route
	if req.Host == "" || req.Header.Get("Via") != "" {
		rw.WriteHeader(http.StatusBadRequest)
		return
	}

	// clone the request before modifying it
	req = req.Clone(req.Context())
	req.Header.Add("Via", "testingx/0.1.0")

	// fix: "http: Request.RequestURI can't be set in client requests"
	req.RequestURI = ""

	// fix: `http: unsupported protocol scheme ""`
	req.URL.Host = req.Host
	req.URL.Scheme = "http"

	txp := &http.Transport{Proxy: nil}
	defer txp.CloseIdleConnections()

	resp, err := txp.RoundTrip(req)
	if err != nil {
		logger.Warnf("PROXY: request failed: %s", err.Error())
		rw.WriteHeader(http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, value := range values {
			rw.Header().Add(key, value)
		}
	}
	rw.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(rw, resp.Body)
}
