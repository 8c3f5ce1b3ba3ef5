package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testServer() *Server {
	return NewServer(nil, nil, zap.NewNop())
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestEvaluate(t *testing.T) {
	router := testServer().Router(nil)

	rr := postJSON(t, router, "/v1/evaluate", `{
		"query": "What is machine learning and how does it work?",
		"context": "Machine learning is a subset of artificial intelligence. It enables systems to learn from data.",
		"answer": "Machine learning is a subset of artificial intelligence that enables systems to learn from data.",
		"ground_truth": "Machine learning is a branch of artificial intelligence that learns from data."
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp evaluateResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	for _, name := range []string{"faithfulness", "context_precision", "relevance"} {
		if _, ok := resp.Scores[name]; !ok {
			t.Errorf("response missing metric %q", name)
		}
	}
	if got := resp.Scores["faithfulness"].Score; got != 1.0 {
		t.Errorf("faithfulness = %v, want 1.0", got)
	}
}

func TestEvaluate_MetricSubset(t *testing.T) {
	router := testServer().Router(nil)

	rr := postJSON(t, router, "/v1/evaluate", `{
		"query": "q", "context": "c", "answer": "a",
		"metrics": ["relevance"]
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp evaluateResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Scores) != 1 {
		t.Errorf("scores = %v, want only relevance", resp.Scores)
	}
	if _, ok := resp.Scores["relevance"]; !ok {
		t.Error("response missing relevance")
	}
}

func TestEvaluate_NoGroundTruth_ExcludesContextPrecision(t *testing.T) {
	router := testServer().Router(nil)

	rr := postJSON(t, router, "/v1/evaluate", `{
		"query": "what causes rain", "context": "water vapor condenses", "answer": "condensing water vapor"
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp evaluateResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := resp.Scores["context_precision"]; ok {
		t.Error("context_precision should be excluded without ground truth")
	}
	if _, ok := resp.Scores["faithfulness"]; !ok {
		t.Error("faithfulness should still be present")
	}
}

func TestEvaluate_UnknownMetric_400(t *testing.T) {
	router := testServer().Router(nil)

	rr := postJSON(t, router, "/v1/evaluate", `{
		"query": "q", "context": "c", "answer": "a",
		"metrics": ["semantic_similarity"]
	}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != codeUnknownMetric {
		t.Errorf("error code = %q, want %q", errResp.Code, codeUnknownMetric)
	}
}

func TestEvaluate_MalformedBody_400(t *testing.T) {
	router := testServer().Router(nil)

	rr := postJSON(t, router, "/v1/evaluate", `{not json`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestEvaluateBatch(t *testing.T) {
	router := testServer().Router(nil)

	rr := postJSON(t, router, "/v1/evaluate/batch", `{
		"queries": ["what causes rain to form", "what causes rain to form"],
		"contexts": ["rain forms when water vapor condenses", "rain forms when water vapor condenses"],
		"answers": ["rain forms when water vapor condenses", "rain forms when water vapor condenses"],
		"ground_truths": ["rain forms when vapor condenses", null]
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp batchEvaluateResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Results) != 2 {
		t.Fatalf("count = %d, results = %d, want 2", resp.Count, len(resp.Results))
	}
	if _, ok := resp.Results[0]["context_precision"]; !ok {
		t.Error("first record should include context_precision")
	}
	if _, ok := resp.Results[1]["context_precision"]; ok {
		t.Error("second record has no ground truth, context_precision should be excluded")
	}
	if _, ok := resp.Averages["faithfulness"]; !ok {
		t.Error("averages missing faithfulness")
	}
}

func TestEvaluateBatch_LengthMismatch_400(t *testing.T) {
	router := testServer().Router(nil)

	rr := postJSON(t, router, "/v1/evaluate/batch", `{
		"queries": ["a", "b"],
		"contexts": ["c"],
		"answers": ["d", "e"]
	}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != codeLengthMismatch {
		t.Errorf("error code = %q, want %q", errResp.Code, codeLengthMismatch)
	}
}

func TestEvaluateBatch_Empty_400(t *testing.T) {
	router := testServer().Router(nil)

	rr := postJSON(t, router, "/v1/evaluate/batch", `{"queries": [], "contexts": [], "answers": []}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	router := testServer().Router(nil)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestRouter_AuthProtectsEvaluate(t *testing.T) {
	router := testServer().Router([]string{"secret"})

	rr := postJSON(t, router, "/v1/evaluate", `{"query":"q","context":"c","answer":"a"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	hrr := httptest.NewRecorder()
	router.ServeHTTP(hrr, req)
	if hrr.Code != http.StatusOK {
		t.Errorf("/health status = %d, want 200", hrr.Code)
	}
}
