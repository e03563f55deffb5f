package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGoogleTranslate(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"client": r.URL.Query().Get("client"),
			"sl":     r.URL.Query().Get("sl"),
			"tl":     r.URL.Query().Get("tl"),
			"q":      r.URL.Query().Get("q"),
		}
		w.Write([]byte(`[[["Hola","Hello",null,null,10]],null,"en"]`))
	}))
	defer srv.Close()

	tr := NewGoogleTranslator("en", "es", GoogleOptions{Endpoint: srv.URL})
	got, err := tr.Translate(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Hola" {
		t.Errorf("translation = %q, want Hola", got)
	}

	if gotPath != "/translate_a/single" {
		t.Errorf("path = %q", gotPath)
	}
	want := map[string]string{"client": "gtx", "sl": "en", "tl": "es", "q": "Hello"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestGoogleTranslateMultiSegment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[["Erster Satz. ","First sentence. ",null,null,3],["Zweiter Satz.","Second sentence.",null,null,3]],null,"en"]`))
	}))
	defer srv.Close()

	tr := NewGoogleTranslator("en", "de", GoogleOptions{Endpoint: srv.URL})
	got, err := tr.Translate(context.Background(), "First sentence. Second sentence.")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Erster Satz. Zweiter Satz." {
		t.Errorf("translation = %q, want concatenated segments", got)
	}
}

func TestGoogleTranslateRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr := NewGoogleTranslator("en", "ar", GoogleOptions{Endpoint: srv.URL})
	_, err := tr.Translate(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("err = %v, want rate limit error", err)
	}
}

func TestGoogleTranslateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := NewGoogleTranslator("en", "ar", GoogleOptions{Endpoint: srv.URL})
	_, err := tr.Translate(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("err = %v, want status error", err)
	}
}

func TestGoogleTranslateInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>captcha</html>`))
	}))
	defer srv.Close()

	tr := NewGoogleTranslator("en", "ar", GoogleOptions{Endpoint: srv.URL})
	if _, err := tr.Translate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}

func TestExtractTranslation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"single segment", `[[["Bonjour","Hello"]],null,"en"]`, "Bonjour", false},
		{"empty array", `[]`, "", true},
		{"no segments", `[null,null,"en"]`, "", true},
		{"segment without text", `[[[]],null,"en"]`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractTranslation([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
