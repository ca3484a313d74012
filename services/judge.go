package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"codearena/model"
)

// JudgeClient talks to the external code-execution service. The platform
// does not run code itself; it forwards the source and test cases and
// stores the verdict the judge returns.
type JudgeClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewJudgeClient(baseURL, apiKey string) *JudgeClient {
	return &JudgeClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type judgeRequest struct {
	Language  string          `json:"language"`
	Source    string          `json:"source"`
	TestCases []judgeTestCase `json:"test_cases"`
}

type judgeTestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

type judgeResponse struct {
	Verdict string  `json:"verdict"`
	Score   float64 `json:"score"`
	Output  string  `json:"output"`
	Error   string  `json:"error"`
}

func (j *JudgeClient) Grade(ctx context.Context, language, sourceCode string, testCases []model.TestCase) (string, float64, string, error) {
	if j.BaseURL == "" {
		return "", 0, "", fmt.Errorf("judge URL not configured")
	}

	req := judgeRequest{
		Language: language,
		Source:   sourceCode,
	}
	for _, tc := range testCases {
		req.TestCases = append(req.TestCases, judgeTestCase{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", 0, "", fmt.Errorf("failed to encode judge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, j.BaseURL+"/v1/grade", bytes.NewReader(body))
	if err != nil {
		return "", 0, "", fmt.Errorf("failed to build judge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if j.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+j.APIKey)
	}

	resp, err := j.HTTPClient.Do(httpReq)
	if err != nil {
		return "", 0, "", fmt.Errorf("judge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, "", fmt.Errorf("judge returned status %d", resp.StatusCode)
	}

	var result judgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, "", fmt.Errorf("failed to decode judge response: %w", err)
	}
	if result.Error != "" {
		return "", 0, "", fmt.Errorf("judge error: %s", result.Error)
	}
	if result.Verdict == "" {
		result.Verdict = model.VerdictError
	}

	return result.Verdict, result.Score, result.Output, nil
}
