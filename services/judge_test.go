package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codearena/model"
)

func TestJudgeClientGrade(t *testing.T) {
	var gotAuth string
	var gotReq judgeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/grade" {
			t.Errorf("judge called at %s, want /v1/grade", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode judge request: %v", err)
		}
		json.NewEncoder(w).Encode(judgeResponse{
			Verdict: model.VerdictAccepted,
			Score:   100,
			Output:  "all tests passed",
		})
	}))
	defer server.Close()

	client := NewJudgeClient(server.URL, "secret-key")
	verdict, score, output, err := client.Grade(context.Background(), "python", "print(1)", []model.TestCase{
		{Input: "1", ExpectedOutput: "1"},
	})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}

	if verdict != model.VerdictAccepted {
		t.Errorf("Grade() verdict = %q, want accepted", verdict)
	}
	if score != 100 {
		t.Errorf("Grade() score = %v, want 100", score)
	}
	if output != "all tests passed" {
		t.Errorf("Grade() output = %q", output)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("judge Authorization = %q, want bearer key", gotAuth)
	}
	if gotReq.Language != "python" || gotReq.Source != "print(1)" {
		t.Errorf("judge request = %+v, want language and source forwarded", gotReq)
	}
	if len(gotReq.TestCases) != 1 || gotReq.TestCases[0].Input != "1" {
		t.Errorf("judge request test cases = %+v", gotReq.TestCases)
	}
}

func TestJudgeClientGradeFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "judge-side error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(judgeResponse{Error: "compiler unavailable"})
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewJudgeClient(server.URL, "")
			if _, _, _, err := client.Grade(context.Background(), "python", "print(1)", nil); err == nil {
				t.Error("Grade() error = nil, want failure surfaced")
			}
		})
	}
}

func TestJudgeClientUnconfigured(t *testing.T) {
	client := &JudgeClient{HTTPClient: http.DefaultClient}
	if _, _, _, err := client.Grade(context.Background(), "python", "print(1)", nil); err == nil {
		t.Error("Grade() error = nil, want unconfigured judge rejected")
	}
}
