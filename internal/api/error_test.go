package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestErrorPrefersServerMessage(t *testing.T) {
	err := errorFromResponse(response(400, `{"message":"Invalid credentials"}`))
	if err.Error() != "Invalid credentials" {
		t.Errorf("expected server message, got %q", err.Error())
	}
}

func TestErrorFallsBackToErrorField(t *testing.T) {
	err := errorFromResponse(response(409, `{"error":"email already registered"}`))
	if err.Error() != "email already registered" {
		t.Errorf("expected error field, got %q", err.Error())
	}
}

func TestErrorWithoutBodyReportsStatus(t *testing.T) {
	err := errorFromResponse(response(502, "upstream exploded"))
	if err.Error() != "request failed with status 502" {
		t.Errorf("expected status fallback, got %q", err.Error())
	}
}

func TestIsUnauthorized(t *testing.T) {
	unauthorized := errorFromResponse(response(401, `{"message":"missing token"}`))
	if !IsUnauthorized(unauthorized) {
		t.Error("expected 401 to report unauthorized")
	}
	if !IsUnauthorized(fmt.Errorf("call failed: %w", unauthorized)) {
		t.Error("expected wrapped 401 to report unauthorized")
	}
	if IsUnauthorized(errorFromResponse(response(404, ""))) {
		t.Error("404 should not report unauthorized")
	}
	if IsUnauthorized(io.EOF) {
		t.Error("non-API error should not report unauthorized")
	}
}
