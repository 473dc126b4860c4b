package notification

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Veraticus/alert/pkg/process"
)

func TestNotifyAppClient_Send(t *testing.T) {
	var gotMethod, gotPath string
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cmd := &process.Command{Program: "sh", Args: []string{"-c", "exit 3"}}
	client := NewNotifyAppClient(server.Client(), server.URL, "key-123", quietLogger())

	if err := client.Send(New(Failure, cmd)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotMethod != http.MethodGet {
		t.Errorf("method = %s, want GET", gotMethod)
	}
	if gotPath != "/notify" {
		t.Errorf("path = %s, want /notify", gotPath)
	}

	want := map[string]string{
		"to":    "key-123",
		"title": "Command failed",
		"text":  "sh -c 'exit 3'",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query[%s] = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestNotifyAppClient_SendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewNotifyAppClient(server.Client(), server.URL, "key", quietLogger())
	err := client.Send(New(Success, nil))

	var sendErr *SendError
	if !errors.As(err, &sendErr) {
		t.Fatalf("expected *SendError, got %v", err)
	}
	if sendErr.Service != "Notify app" || sendErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected error: %+v", sendErr)
	}
}
