package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "supercut/internal/platform/errors"
	pnet "supercut/internal/platform/net"
)

// Envelope is the body of every JSON response
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func successEnvelope(status int, reqID string, data any) Envelope {
	return Envelope{StatusCode: status, Status: stdhttp.StatusText(status), RequestID: reqID, Data: data}
}

// ErrorEnvelope maps err onto its status and envelope
func ErrorEnvelope(err error, reqID string) (int, Envelope) {
	status, wire := perr.HTTP(err)
	return status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		Field:      wire.Field,
		RequestID:  reqID,
	}
}

// RespondError writes err as an envelope, for handlers outside the Response style
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, env := ErrorEnvelope(err, pnet.RequestID(r.Context()))
	JSON(w, status, env)
}

// Response is what return style handlers produce
// Body is wrapped in an Envelope unless Raw is set, in which case it is written verbatim
type Response struct {
	Status      int
	Body        any
	Header      stdhttp.Header
	Raw         []byte
	ContentType string
}

// Handle adapts a return style handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).write(w, r) }
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := ErrorEnvelope(err, pnet.RequestID(r.Context()))
		JSON(w, status, env)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	switch {
	case status == stdhttp.StatusNoContent:
		w.WriteHeader(status)
	case resp.Raw != nil:
		ct := resp.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		w.WriteHeader(status)
		_, _ = w.Write(resp.Raw)
	default:
		JSON(w, status, successEnvelope(status, pnet.RequestID(r.Context()), resp.Body))
	}
}

// OK is a 200 envelope around data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created is a 201 envelope around data
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent is an empty 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error maps err to its status and error envelope
func Error(err error) Response { return Response{Body: err} }

// Text writes body as is with the given content type; filename adds a download disposition
func Text(contentType, body, filename string) Response {
	resp := Response{Status: stdhttp.StatusOK, Raw: []byte(body), ContentType: contentType}
	if filename != "" {
		resp.Header = stdhttp.Header{}
		resp.Header.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	return resp
}
