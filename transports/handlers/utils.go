// Package handlers implements the HTTP surface of the model cache.
package handlers

import (
	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
)

// SendJSON writes payload as a 200 JSON response.
func SendJSON(ctx *fasthttp.RequestCtx, payload any) {
	SendJSONWithStatus(ctx, payload, fasthttp.StatusOK)
}

// SendJSONWithStatus writes payload as JSON with the given status code.
func SendJSONWithStatus(ctx *fasthttp.RequestCtx, payload any, status int) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		SendError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

// SendError writes a JSON error envelope.
func SendError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := sonic.Marshal(map[string]string{"error": message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

// pathParam returns a string route parameter.
func pathParam(ctx *fasthttp.RequestCtx, name string) string {
	value, _ := ctx.UserValue(name).(string)
	return value
}

// boolQuery reports whether a query flag is set to a truthy value.
func boolQuery(ctx *fasthttp.RequestCtx, name string) bool {
	switch string(ctx.QueryArgs().Peek(name)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
