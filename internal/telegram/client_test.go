package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendMessage(t *testing.T) {
	var gotPath, gotChatID, gotText string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotChatID = r.Form.Get("chat_id")
		gotText = r.Form.Get("text")
		w.WriteHeader(http.StatusOK)
	}))
	defer api.Close()

	c := NewClient(api.URL, "123:abc")
	if err := c.SendMessage(context.Background(), 42, "hola"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotChatID != "42" || gotText != "hola" {
		t.Errorf("chat_id = %q, text = %q", gotChatID, gotText)
	}
}

func TestSendMessageAPIError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"Bad Request: chat not found"}`, http.StatusBadRequest)
	}))
	defer api.Close()

	c := NewClient(api.URL, "123:abc")
	if err := c.SendMessage(context.Background(), 42, "hola"); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}
