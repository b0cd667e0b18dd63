package chain

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
)

const maxResponseSize = 16 << 20

// RPCConfig locates a node or wallet RPC service. The services authenticate
// clients with the private certificate of the node installation.
type RPCConfig struct {
	URL      string
	CertFile string
	KeyFile  string
	Timeout  time.Duration
}

// serviceError is returned when the service answered but reported a failure.
type serviceError struct {
	endpoint string
	message  string
}

func (e *serviceError) Error() string {
	return fmt.Sprintf("%s: %s", e.endpoint, e.message)
}

func isServiceError(err error) bool {
	var serr *serviceError
	return errors.As(err, &serr)
}

type rpcClient struct {
	url  string
	http *http.Client
}

func newRPCClient(cfg RPCConfig) (*rpcClient, error) {
	// services use a self signed certificate
	tlsConfig := &tls.Config{InsecureSkipVerify: true} // #nosec G402
	if cfg.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &rpcClient{
		url: strings.TrimSuffix(cfg.URL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{TLSClientConfig: tlsConfig, MaxIdleConnsPerHost: 16},
		},
	}, nil
}

func (c *rpcClient) call(ctx context.Context, endpoint string, request, response any) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRPC, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRPC, endpoint, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: %s: reading response: %v", ErrRPC, endpoint, err)
	}

	var status struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &status); err != nil {
		return fmt.Errorf("%w: %s: status %d: %v", ErrRPC, endpoint, resp.StatusCode, err)
	}
	if !status.Success {
		return &serviceError{endpoint: endpoint, message: status.Error}
	}
	if response == nil {
		return nil
	}
	if err := json.Unmarshal(data, response); err != nil {
		return fmt.Errorf("%w: %s: decoding response: %v", ErrRPC, endpoint, err)
	}
	return nil
}

func (c *rpcClient) close() {
	c.http.CloseIdleConnections()
}

// unixSeconds converts the fractional unix timestamps used by the node.
func unixSeconds(ts float64) time.Time {
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*1e9))
}
