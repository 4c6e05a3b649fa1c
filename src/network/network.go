package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"progress-report-bot/src/helpers"
	"progress-report-bot/src/interfaces"
	"progress-report-bot/src/logger"
	"progress-report-bot/src/models"
)

// defaultMaxBodyBytes caps how much of a stats response is read into memory.
const defaultMaxBodyBytes = 4 << 20

type NetworkManager struct {
	Config       *models.MConfig
	ProxyManager interfaces.IProxyManager
	Logger       *logger.Logger
	MaxBodyBytes int64

	mu     sync.Mutex
	client *http.Client
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) *NetworkManager {
	nm := &NetworkManager{
		Config:       cfg,
		ProxyManager: helpers.NewProxyManager(cfg.Network.Proxies, cfg.Network.UserAgent, log),
		Logger:       log,
		MaxBodyBytes: defaultMaxBodyBytes,
	}
	nm.client = nm.createClient()
	return nm
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) createClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if nm.ProxyManager.HasProxies() {
		proxyStr, err := nm.ProxyManager.GetCurrentProxy()
		if err == nil && proxyStr != "" {
			proxyURL, err := url.Parse(proxyStr)
			if err == nil {
				transport.Proxy = http.ProxyURL(proxyURL)
			}
		}
	}

	// Per-request deadlines come from the caller's context.
	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(nm.Config.StatsAPI.TimeoutSeconds) * time.Second,
	}
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) httpClient() *http.Client {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	return nm.client
}

// -----------------------------------------------------------------------------

// rotateProxy moves the next request onto another proxy after a transport failure.
func (nm *NetworkManager) rotateProxy() {
	if !nm.ProxyManager.HasProxies() {
		return
	}

	nm.ProxyManager.RotateProxy()
	nm.mu.Lock()
	nm.client = nm.createClient()
	nm.mu.Unlock()
}

// -----------------------------------------------------------------------------

// BuildURL appends params to the query already present on urlStr.
func BuildURL(urlStr string, params map[string]string) (string, error) {
	reqURL, err := url.Parse(urlStr)
	if err != nil {
		return "", err
	}

	q := reqURL.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	reqURL.RawQuery = q.Encode()

	return reqURL.String(), nil
}

// -----------------------------------------------------------------------------

// Get performs a single GET request. There is no retry loop.
func (nm *NetworkManager) Get(ctx context.Context, urlStr string, params map[string]string) ([]byte, error) {
	finalURL, err := BuildURL(urlStr, params)
	if err != nil {
		return nil, helpers.NewConfigurationError(fmt.Sprintf("invalid url %q", urlStr), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, helpers.NewNetworkError("failed to build request", err)
	}
	req.Header.Set("User-Agent", nm.ProxyManager.GetUserAgent())
	req.Header.Set("Accept", "application/json")

	nm.Logger.Debug("GET %s", finalURL)

	resp, err := nm.httpClient().Do(req)
	if err != nil {
		nm.Logger.Warning("Request failed: %v", err)
		nm.rotateProxy()
		return nil, helpers.NewNetworkError("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		nm.Logger.Info("Bad status %d", resp.StatusCode)
		io.Copy(io.Discard, io.LimitReader(resp.Body, nm.MaxBodyBytes))
		return nil, helpers.NewFetchError(resp.StatusCode)
	}

	// One extra byte tells a body at the limit from one past it.
	body, err := io.ReadAll(io.LimitReader(resp.Body, nm.MaxBodyBytes+1))
	if err != nil {
		return nil, helpers.NewNetworkError("failed to read response body", err)
	}
	if int64(len(body)) > nm.MaxBodyBytes {
		nm.Logger.Warning("Response body from %s exceeds %d bytes", finalURL, nm.MaxBodyBytes)
		return nil, helpers.NewNetworkError(fmt.Sprintf("response body exceeds %d bytes", nm.MaxBodyBytes), nil)
	}

	return body, nil
}
