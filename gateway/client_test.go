package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/model"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, 5*time.Second)
}

func TestFetchHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/chat/history" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"chat_history":[{"user":"hi","bot":"hello"},{"user":"more","bot":"sure"}]}`))
	}))
	defer srv.Close()

	turns, err := newTestClient(srv).FetchHistory(context.Background())
	if err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
	if len(turns) != 2 || turns[0].User != "hi" || turns[0].Bot != "hello" {
		t.Fatalf("unexpected turns: %+v", turns)
	}
}

func TestSendChatQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat/" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type: %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"query":"what courses are open?"`) {
			t.Fatalf("missing query in body: %s", body)
		}
		_, _ = w.Write([]byte(`{"response":"try Circuits 2"}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv).SendChatQuery(context.Background(), "what courses are open?")
	if err != nil {
		t.Fatalf("SendChatQuery: %v", err)
	}
	if resp != "try Circuits 2" {
		t.Fatalf("unexpected response: %q", resp)
	}
}

func TestSendChatQueryServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).SendChatQuery(context.Background(), "hi")
	if err == nil {
		t.Fatalf("expected error on 500")
	}
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *gateway.Error, got %T", err)
	}
	if gerr.Op != "send chat query" {
		t.Fatalf("unexpected op: %q", gerr.Op)
	}
}

func TestSendChatQueryMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).SendChatQuery(context.Background(), "hi")
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *gateway.Error, got %v", err)
	}
}

func TestSendChatQueryTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := c.SendChatQuery(context.Background(), "hi")
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *gateway.Error, got %v", err)
	}
}

func TestResetHistory(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"message":"whatever"}`))
	}))
	defer srv.Close()

	if err := newTestClient(srv).ResetHistory(context.Background()); err != nil {
		t.Fatalf("ResetHistory: %v", err)
	}
	if gotPath != "/api/chat/reset_chat" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
}

func TestDetectEmptySlotsKeepsDayOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/image/detect_empty_slots" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing multipart field 'file': %v", err)
		}
		f.Close()
		if hdr.Filename != "timetable.png" {
			t.Fatalf("unexpected filename: %s", hdr.Filename)
		}
		// deliberately not alphabetical: order must survive decoding
		_, _ = w.Write([]byte(`{"free_slots":{"Wed":["1-2PM"],"Mon":[],"Fri":["3-4PM","4-5PM"]}}`))
	}))
	defer srv.Close()

	days, err := newTestClient(srv).DetectEmptySlots(context.Background(), model.Attachment{
		Name: "timetable.png",
		Data: []byte("fake-image"),
	})
	if err != nil {
		t.Fatalf("DetectEmptySlots: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if days[0].Day != "Wed" || days[1].Day != "Mon" || days[2].Day != "Fri" {
		t.Fatalf("day order scrambled: %+v", days)
	}
	if len(days[1].Times) != 0 {
		t.Fatalf("expected empty Mon, got %+v", days[1].Times)
	}
	if len(days[2].Times) != 2 || days[2].Times[0] != "3-4PM" {
		t.Fatalf("unexpected Fri times: %+v", days[2].Times)
	}
}

func TestDetectEmptySlotsNullMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"free_slots":null}`))
	}))
	defer srv.Close()

	days, err := newTestClient(srv).DetectEmptySlots(context.Background(), model.Attachment{Name: "t.png"})
	if err != nil {
		t.Fatalf("DetectEmptySlots: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected no days, got %+v", days)
	}
}

func TestRecommendFromImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recommend/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Fatalf("missing multipart field 'file': %v", err)
		}
		_, _ = w.Write([]byte(`{"추천 강의":[{"시간":"Mon 1-2PM","강의명":"Circuits","교수님":"Park"}]}`))
	}))
	defer srv.Close()

	courses, err := newTestClient(srv).RecommendFromImage(context.Background(), model.Attachment{
		Name: "t.png",
		Data: []byte("img"),
	})
	if err != nil {
		t.Fatalf("RecommendFromImage: %v", err)
	}
	if len(courses) != 1 || courses[0].Time != "Mon 1-2PM" || courses[0].Name != "Circuits" || courses[0].Professor != "Park" {
		t.Fatalf("unexpected courses: %+v", courses)
	}
}

func TestRecommendFromManualSlots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recommend/manual" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"available_times":[{"day":"Mon","time":"1-2PM"}]`) {
			t.Fatalf("unexpected body: %s", body)
		}
		_, _ = w.Write([]byte(`{"추천 강의":[{"요일":"Mon","교시":"3","강의명":"Circuits","교수님":"Park"}]}`))
	}))
	defer srv.Close()

	courses, err := newTestClient(srv).RecommendFromManualSlots(context.Background(), []model.TimeSlot{
		{Day: "Mon", Time: "1-2PM"},
	})
	if err != nil {
		t.Fatalf("RecommendFromManualSlots: %v", err)
	}
	if len(courses) != 1 || courses[0].Day != "Mon" || courses[0].Period != "3" {
		t.Fatalf("unexpected courses: %+v", courses)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer srv.Close()

	if err := newTestClient(srv).Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}
