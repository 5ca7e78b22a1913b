package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

const expoPushAPI = "https://exp.host/--/api/v2/push/send"

var expoTokenPattern = regexp.MustCompile(`^ExponentPushToken\[[^\]]+\]$`)

// IsExpoPushToken reports whether the value looks like an Expo push token.
func IsExpoPushToken(token string) bool {
	return expoTokenPattern.MatchString(strings.TrimSpace(token))
}

// ExpoPushClient delivers mobile push notifications through the Expo push
// API. Push is a best-effort side channel; callers must not fail a workflow
// on send errors.
type ExpoPushClient struct {
	baseURL string
	client  *http.Client
}

func NewExpoPushClient(client *http.Client) *ExpoPushClient {
	baseURL := strings.TrimSpace(os.Getenv("EXPO_PUSH_URL"))
	if baseURL == "" {
		baseURL = expoPushAPI
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &ExpoPushClient{baseURL: baseURL, client: client}
}

type expoPushMessage struct {
	To       string            `json:"to"`
	Sound    string            `json:"sound"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Priority string            `json:"priority"`
}

// SendPush fans one notice out to the given tokens. Malformed tokens are
// filtered; with nothing valid left the call is a no-op.
func (c *ExpoPushClient) SendPush(ctx context.Context, tokens []string, title, body string) error {
	valid := filterExpoTokens(tokens)
	if len(valid) == 0 || title == "" || body == "" {
		return nil
	}

	messages := make([]expoPushMessage, 0, len(valid))
	for _, to := range valid {
		messages = append(messages, expoPushMessage{
			To:       to,
			Sound:    "default",
			Title:    title,
			Body:     body,
			Priority: "high",
		})
	}

	payload, err := json.Marshal(messages)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("expo push failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}

func filterExpoTokens(tokens []string) []string {
	var valid []string
	seen := make(map[string]bool)
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] || !IsExpoPushToken(t) {
			continue
		}
		seen[t] = true
		valid = append(valid, t)
	}
	return valid
}
