package ghost

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AjinkyaSambare/razorpay-integration/internal/types/member"
)

// Client talks to the Ghost admin API. Admin keys come as "<id>:<hex secret>";
// each request is authenticated with a short-lived HS256 token signed by the
// decoded secret, carrying the key id in the kid header.
type Client struct {
	baseURL    string
	keyID      string
	secret     []byte
	httpClient *http.Client
}

func NewClient(apiURL, adminKey string) (*Client, error) {
	keyID, hexSecret, ok := strings.Cut(adminKey, ":")
	if !ok {
		return nil, fmt.Errorf("ghost admin key must be in id:secret format")
	}

	secret, err := hex.DecodeString(hexSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ghost admin key secret: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(apiURL, "/"),
		keyID:   keyID,
		secret:  secret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (c *Client) token() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
		"aud": "/admin/",
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = c.keyID

	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign ghost admin token: %w", err)
	}
	return signed, nil
}

// membersEnvelope is the wrapper Ghost uses for both requests and responses.
type membersEnvelope struct {
	Members []member.Member `json:"members"`
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	token, err := c.token()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Ghost "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("ghost admin API %s %s returned %d: %s", method, path, resp.StatusCode, string(detail))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode ghost response: %w", err)
		}
	}
	return nil
}

// BrowseMembersByEmail returns the members whose email exactly matches.
func (c *Client) BrowseMembersByEmail(ctx context.Context, email string) ([]member.Member, error) {
	filter := url.QueryEscape(fmt.Sprintf("email:'%s'", email))

	var env membersEnvelope
	if err := c.do(ctx, http.MethodGet, "/members/?filter="+filter, nil, &env); err != nil {
		return nil, err
	}
	return env.Members, nil
}

func (c *Client) UpdateMember(ctx context.Context, id string, m member.Member) (*member.Member, error) {
	var env membersEnvelope
	payload := membersEnvelope{Members: []member.Member{m}}

	if err := c.do(ctx, http.MethodPut, "/members/"+id+"/", payload, &env); err != nil {
		return nil, err
	}
	if len(env.Members) == 0 {
		return nil, fmt.Errorf("ghost returned no member for update of %s", id)
	}
	return &env.Members[0], nil
}

func (c *Client) CreateMember(ctx context.Context, m member.Member) (*member.Member, error) {
	var env membersEnvelope
	payload := membersEnvelope{Members: []member.Member{m}}

	if err := c.do(ctx, http.MethodPost, "/members/", payload, &env); err != nil {
		return nil, err
	}
	if len(env.Members) == 0 {
		return nil, fmt.Errorf("ghost returned no member after create")
	}
	return &env.Members[0], nil
}
