package httprole

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption-api/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("identity client not configured")
	ErrUpstream      = errors.New("identity upstream error")
)

const roleShelterManager = "shelter_manager"

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string
	Timeout      time.Duration
}

// Client grants and revokes the shelter-manager role through the external
// identity provider's HTTP API. It implements identity.RoleGranter.
type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

type roleRequest struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	ShelterID string `json:"shelter_id"`
}

func (c *Client) AssignShelterRole(ctx context.Context, userID, shelterID string) error {
	return c.post(ctx, "/v1/roles/assign", userID, shelterID)
}

func (c *Client) RevokeShelterRole(ctx context.Context, userID, shelterID string) error {
	return c.post(ctx, "/v1/roles/revoke", userID, shelterID)
}

func (c *Client) post(ctx context.Context, path, userID, shelterID string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	userID = strings.TrimSpace(userID)
	shelterID = strings.TrimSpace(shelterID)
	if userID == "" || shelterID == "" {
		return errors.New("userID and shelterID required")
	}

	err := c.http.DoJSON(ctx, http.MethodPost, path,
		map[string]string{c.apiKeyHeader: c.apiKey},
		roleRequest{UserID: userID, Role: roleShelterManager, ShelterID: shelterID},
		nil,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}
