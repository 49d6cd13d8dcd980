package webapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const (
	clientTimeout       = 5 * time.Second
	healthCheckEndpoint = "/health"
	healthyStatus       = "ok"
)

var ErrUnhealthy = errors.New("strategy host is unhealthy")

type HealthCheckResponse struct {
	Status string `json:"status"`
}

type repository struct {
	cli *http.Client
}

func New() repository {
	return repository{
		cli: &http.Client{Timeout: clientTimeout},
	}
}

// HealthCheck probes the strategy host behind a remote strategy URL such as
// ws://host:9000/strategy/hunter.
func (r repository) HealthCheck(ctx context.Context, strategyURL string) error {
	addr, err := HostURL(strategyURL)
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+healthCheckEndpoint, nil)
	if err != nil {
		return errors.WithMessage(err, "new get request")
	}
	resp, err := r.cli.Do(request)
	if err != nil {
		return errors.WithMessagef(err, "call http endpoint '%s'", healthCheckEndpoint)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected response status '%s'", resp.Status)
	}
	result := new(HealthCheckResponse)
	if err := jsoniter.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.WithMessage(err, "decode json response body")
	}
	if result.Status != healthyStatus {
		return errors.WithMessagef(ErrUnhealthy, "status '%s'", result.Status)
	}
	return nil
}

// HostURL maps a websocket strategy URL to the http base URL of its host.
func HostURL(strategyURL string) (string, error) {
	u, err := url.Parse(strategyURL)
	if err != nil {
		return "", errors.WithMessagef(err, "parse url '%s'", strategyURL)
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	case "http", "https":
	default:
		return "", errors.Errorf("unsupported scheme '%s'", u.Scheme)
	}
	return u.Scheme + "://" + u.Host, nil
}
