package slack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"FaceReporter/internal/entity"

	jsoniter "github.com/json-iterator/go"
)

const (
	DefaultAPIURL = "https://slack.com/api"

	DefaultMaxDownloadBytes = 64 << 20
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ISlack interface {
	DownloadFile(ctx context.Context, url string) ([]byte, error)
	PostMessage(ctx context.Context, msg entity.ChatMessage) error
}

type slackClient struct {
	httpClient  *http.Client
	token       string
	apiURL      string
	maxDownload int64
}

type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// New builds the Web API client. Downloads larger than maxDownload bytes are
// refused; zero uses DefaultMaxDownloadBytes.
func New(token string, apiURL string, httpClient *http.Client, maxDownload int64) ISlack {
	if maxDownload <= 0 {
		maxDownload = DefaultMaxDownloadBytes
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &slackClient{
		httpClient:  httpClient,
		token:       token,
		apiURL:      strings.TrimRight(apiURL, "/"),
		maxDownload: maxDownload,
	}
}

// DownloadFile fetches a private file URL using the bot token.
func (s *slackClient) DownloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxDownload+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(data)) > s.maxDownload {
		return nil, fmt.Errorf("download %s: file exceeds %d bytes", url, s.maxDownload)
	}

	return data, nil
}

// PostMessage sends msg through chat.postMessage. A non-2xx status or an
// "ok": false body is an error; nothing is retried.
func (s *slackClient) PostMessage(ctx context.Context, msg entity.ChatMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat.postMessage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("chat.postMessage: unexpected status %d", resp.StatusCode)
	}

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("chat.postMessage: decode response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("chat.postMessage: %s", result.Error)
	}

	return nil
}
