package configs

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
)

type ConsulService struct {
	ID      string            `json:"ID"`
	Name    string            `json:"Name"`
	Address string            `json:"Address"`
	Port    int               `json:"Port"`
	Check   map[string]string `json:"Check"`
}

// NewConsulService describes this process to Consul with an HTTP health check.
func NewConsulService(name string, cfg Config) ConsulService {
	port := cfg.PortNumber()
	return ConsulService{
		ID:      name,
		Name:    name,
		Address: cfg.ServiceHost,
		Port:    port,
		Check: map[string]string{
			"HTTP":     fmt.Sprintf("http://%s:%d/health", cfg.ServiceHost, port),
			"Interval": "10s",
		},
	}
}

// RegisterService registers the service with the Consul agent at consulAddress.
func RegisterService(ctx context.Context, client *http.Client, consulAddress string, service ConsulService) error {
	data, err := sonic.Marshal(service)
	if err != nil {
		return fmt.Errorf("failed to marshal service data: %w", err)
	}

	url := strings.TrimRight(consulAddress, "/") + "/v1/agent/service/register"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create PUT request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to register service with Consul: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to register service with Consul: %s", resp.Status)
	}
	return nil
}
