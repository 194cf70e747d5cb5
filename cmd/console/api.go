package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// StorySummary mirrors one entry of GET /api/stories.
type StorySummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// PlayResponse mirrors the play endpoints' response body.
type PlayResponse struct {
	Message string `json:"message"`
	Image   string `json:"image"`
	End     bool   `json:"end"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func listStories(client *http.Client, baseURL string) ([]StorySummary, error) {
	resp, err := client.Get(baseURL + "/api/stories")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body, "failed to list stories")
	}

	var stories []StorySummary
	if err := json.Unmarshal(body, &stories); err != nil {
		return nil, fmt.Errorf("failed to parse stories response: %w", err)
	}
	return stories, nil
}

func startStory(client *http.Client, baseURL string, storyID int) (*PlayResponse, error) {
	return postPlay(client, fmt.Sprintf("%s/api/start/%d", baseURL, storyID), nil)
}

func nextScene(client *http.Client, baseURL string, choice string) (*PlayResponse, error) {
	return postPlay(client, baseURL+"/api/next", map[string]string{"choice": choice})
}

func sendInput(client *http.Client, baseURL string, input string) (*PlayResponse, error) {
	return postPlay(client, baseURL+"/api/user-input", map[string]string{"input": input})
}

func postPlay(client *http.Client, url string, payload interface{}) (*PlayResponse, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	resp, err := client.Post(url, "application/json", reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body, "request failed")
	}

	var play PlayResponse
	if err := json.Unmarshal(body, &play); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &play, nil
}

func apiError(status int, body []byte, context string) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
		return fmt.Errorf("API returned status %d: %s", status, string(body))
	}
	return fmt.Errorf("%s: %s", context, errorResp.Error)
}
