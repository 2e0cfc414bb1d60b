package api

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/takoapp/tako/internal/logging"
)

type LogsHandler struct {
	sink logging.Sink
}

func NewLogsHandler(sink logging.Sink) *LogsHandler {
	return &LogsHandler{
		sink: sink,
	}
}

type logRequest struct {
	Level   string          `json:"level"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var jsonNull = []byte("null")

// PostLogs handles POST /logs. The route is gated to admin callers. On
// success it responds 201 with an empty body; the payload is not echoed
// back.
func (h *LogsHandler) PostLogs(ctx *fiber.Ctx) error {
	var body logRequest
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			NewErrorResponse(fiber.StatusBadRequest, "Invalid request body"),
		)
	}

	if !logging.ValidLevel(body.Level) {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			NewErrorResponse(fiber.StatusBadRequest, "Level must be one of debug, info, warn, error"),
		)
	}
	if body.Message == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			NewErrorResponse(fiber.StatusBadRequest, "Message cannot be empty"),
		)
	}

	data := make(map[string]any)
	if len(body.Data) == 0 || bytes.Equal(body.Data, jsonNull) || json.Unmarshal(body.Data, &data) != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			NewErrorResponse(fiber.StatusBadRequest, "Data must be an object"),
		)
	}
	if len(data) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			NewErrorResponse(fiber.StatusBadRequest, "Data cannot be empty"),
		)
	}

	// flatten into alternating key/value pairs, sorted by key so each call
	// emits deterministically
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvPairs := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		kvPairs = append(kvPairs, k, data[k])
	}

	switch body.Level {
	case logging.LevelDebug:
		h.sink.Debug(body.Message, kvPairs...)
	case logging.LevelInfo:
		h.sink.Info(body.Message, kvPairs...)
	case logging.LevelWarn:
		h.sink.Warn(body.Message, kvPairs...)
	case logging.LevelError:
		h.sink.Error(body.Message, kvPairs...)
	}

	// Status+Send(nil) keeps the body empty; SendStatus would fill it with
	// the status text.
	return ctx.Status(fiber.StatusCreated).Send(nil)
}
