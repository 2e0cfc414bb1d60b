package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type sinkCall struct {
	level string
	msg   string
	args  []any
}

type captureSink struct {
	calls []sinkCall
}

func (s *captureSink) Debug(msg string, args ...any) {
	s.calls = append(s.calls, sinkCall{"debug", msg, args})
}

func (s *captureSink) Info(msg string, args ...any) {
	s.calls = append(s.calls, sinkCall{"info", msg, args})
}

func (s *captureSink) Warn(msg string, args ...any) {
	s.calls = append(s.calls, sinkCall{"warn", msg, args})
}

func (s *captureSink) Error(msg string, args ...any) {
	s.calls = append(s.calls, sinkCall{"error", msg, args})
}

func newLogsApp(sink *captureSink) *fiber.App {
	app := fiber.New()
	app.Post("/logs", NewLogsHandler(sink).PostLogs)
	return app
}

func postLogs(t *testing.T, app *fiber.App, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", "/logs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp.StatusCode, raw
}

func TestPostLogsValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty data", `{"level":"info","message":"hi","data":{}}`},
		{"bad level", `{"level":"trace","message":"hi","data":{"a":1}}`},
		{"empty message", `{"level":"warn","message":"","data":{"a":1}}`},
		{"missing data", `{"level":"warn","message":"hi"}`},
		{"null data", `{"level":"warn","message":"hi","data":null}`},
		{"array data", `{"level":"warn","message":"hi","data":[1,2]}`},
		{"scalar data", `{"level":"warn","message":"hi","data":"oops"}`},
		{"not json", `{{{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &captureSink{}
			status, body := postLogs(t, newLogsApp(sink), tt.body)
			if status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if len(sink.calls) != 0 {
				t.Errorf("sink received %d calls, want 0", len(sink.calls))
			}
			var envelope APIResponse
			if err := json.Unmarshal(body, &envelope); err != nil {
				t.Fatalf("response is not the JSON envelope: %v", err)
			}
			if envelope.Error == nil || envelope.Error.Code != fiber.StatusBadRequest {
				t.Errorf("envelope error = %+v", envelope.Error)
			}
		})
	}
}

func TestPostLogsSuccess(t *testing.T) {
	sink := &captureSink{}
	status, body := postLogs(t, newLogsApp(sink), `{"level":"error","message":"m","data":{"b":2,"a":1}}`)

	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if len(body) != 0 {
		t.Errorf("body = %q, want empty", body)
	}
	if len(sink.calls) != 1 {
		t.Fatalf("sink received %d calls, want 1", len(sink.calls))
	}
	call := sink.calls[0]
	if call.level != "error" || call.msg != "m" {
		t.Errorf("emitted (%s, %q)", call.level, call.msg)
	}
	want := []any{"a", float64(1), "b", float64(2)}
	if !reflect.DeepEqual(call.args, want) {
		t.Errorf("pairs = %v, want %v", call.args, want)
	}
}

func TestPostLogsLevelDispatch(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		sink := &captureSink{}
		status, _ := postLogs(t, newLogsApp(sink), `{"level":"`+level+`","message":"hi","data":{"k":"v"}}`)
		if status != fiber.StatusCreated {
			t.Fatalf("level %s: status = %d, want 201", level, status)
		}
		if len(sink.calls) != 1 || sink.calls[0].level != level {
			t.Errorf("level %s dispatched to %+v", level, sink.calls)
		}
	}
}
