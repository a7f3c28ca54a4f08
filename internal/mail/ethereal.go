package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provisioner creates disposable SMTP accounts.
type Provisioner interface {
	Provision(ctx context.Context) (*TestAccount, error)
}

// TestAccount is a throwaway inbox as returned by the Ethereal API.
type TestAccount struct {
	User string `json:"user"`
	Pass string `json:"pass"`
	SMTP struct {
		Host   string `json:"host"`
		Port   int    `json:"port"`
		Secure bool   `json:"secure"`
	} `json:"smtp"`
	Web string `json:"web"`
}

// Transport converts the account into SMTP settings, filling in the
// well-known Ethereal endpoints when the API omitted them.
func (a *TestAccount) Transport() Transport {
	t := Transport{
		Host:     a.SMTP.Host,
		Port:     a.SMTP.Port,
		SSL:      a.SMTP.Secure,
		Username: a.User,
		Password: a.Pass,
		Ethereal: true,
		WebURL:   a.Web,
	}
	if t.WebURL == "" {
		t.WebURL = etherealWebURL
	}
	if t.Host == "" {
		t.Host = etherealHost
	}
	if t.Port == 0 {
		t.Port = etherealPort
	}
	return t
}

// ErrProvisionRejected is returned when the API answers without a usable account.
var ErrProvisionRejected = errors.New("ethereal: account request rejected")

// EtherealClient requests test accounts from the Ethereal account API.
type EtherealClient struct {
	APIURL     string
	httpClient *http.Client
}

// NewEtherealClient creates a client for the given account endpoint.
func NewEtherealClient(apiURL string) *EtherealClient {
	return &EtherealClient{
		APIURL:     apiURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

var _ Provisioner = (*EtherealClient)(nil)

type provisionResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	TestAccount
}

// Provision creates a new Ethereal account.
func (c *EtherealClient) Provision(ctx context.Context) (*TestAccount, error) {
	body, err := json.Marshal(map[string]string{
		"requestor": "portfolio-backend",
		"version":   "1.0.0",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ethereal: request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("ethereal: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ethereal: status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var out provisionResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("ethereal: decode response: %w", err)
	}
	if out.Status != "success" || out.User == "" || out.Pass == "" {
		if out.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrProvisionRejected, out.Error)
		}
		return nil, ErrProvisionRejected
	}

	acct := out.TestAccount
	return &acct, nil
}
