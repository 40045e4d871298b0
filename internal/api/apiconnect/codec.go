// Package apiconnect wires the fintrack.v1 services to Connect handlers and
// clients. Messages travel as JSON.
package apiconnect

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Codec marshals the plain Go messages of package api as JSON under the
// "json" codec name, so both the Connect protocol and curl can talk to the
// services with Content-Type application/json.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (Codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// serviceMux routes the procedures of one service.
type serviceMux struct {
	path string
	mux  *http.ServeMux
	opts []connect.HandlerOption
}

func newServiceMux(service string, opts []connect.HandlerOption) *serviceMux {
	all := append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	return &serviceMux{path: "/" + service + "/", mux: http.NewServeMux(), opts: all}
}

func handle[Req, Res any](m *serviceMux, procedure string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error)) {
	m.mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, m.opts...))
}

func (m *serviceMux) handler() (string, http.Handler) {
	return m.path, m.mux
}

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	all := append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, all...)
}
