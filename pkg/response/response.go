package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint answers with. Data is an interface so an
// empty list still serializes as [] while a nil payload is omitted.
type APIResponse struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
}

// ListMeta accompanies list payloads.
type ListMeta struct {
	Count int `json:"count"`
}

func envelope(ctx *gin.Context, status int, ok bool, message string) APIResponse {
	return APIResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   ok,
		Message:   message,
	}
}

// Success writes a success envelope. A zero status means 200.
func Success(ctx *gin.Context, status int, data any, message string, meta any) APIResponse {
	if status == 0 {
		status = http.StatusOK
	}
	resp := envelope(ctx, status, true, message)
	resp.Data, resp.Meta = data, meta
	ctx.JSON(status, resp)
	return resp
}

// List writes a 200 envelope with the item count in meta.
func List(ctx *gin.Context, data any, count int, message string) APIResponse {
	return Success(ctx, http.StatusOK, data, message, ListMeta{Count: count})
}

// Error writes a failure envelope. A zero status means 400. Middleware still calls Abort.
func Error(ctx *gin.Context, status int, message string, detail any) APIResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := envelope(ctx, status, false, message)
	resp.Error = detail
	ctx.JSON(status, resp)
	return resp
}
