package httpadapter

import (
	"context"

	"skytraffic/internal/app/dispatch"
	"skytraffic/internal/app/ports"
	"skytraffic/internal/app/traffic"
	"skytraffic/internal/domain/airspace"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

var _ network.ExtWriter = silentWriter{}

// Handler serves a single request: GET / returns the current traffic
// picture. Everything else is dropped without a payload.
type Handler struct {
	TrafficUC  traffic.UseCase
	Dispatcher *dispatch.Dispatcher
	Metrics    ports.TrafficMetrics
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.GET("/", h.traffic)
	s.NoRoute(h.drop)
}

func (h Handler) traffic(c context.Context, ctx *app.RequestContext) {
	// Only the bare target is recognised; "/?anything" is not the same request.
	if string(ctx.Request.Header.RequestURI()) != "/" {
		h.drop(c, ctx)
		return
	}
	resp, err := h.fetch(c)
	if err != nil {
		hlog.CtxWarnf(c, "http: traffic request degraded to empty: %v", err)
	}
	applyCORSHeaders(ctx)
	ctx.Data(consts.StatusOK, contentTypeJSON, encodeFlights(resp.Flights))
}

type fetchOutcome struct {
	resp traffic.Response
	err  error
}

func (h Handler) fetch(c context.Context) (traffic.Response, error) {
	run := func(ctx context.Context) fetchOutcome {
		resp, err := h.TrafficUC.Execute(ctx, traffic.Request{})
		return fetchOutcome{resp: resp, err: err}
	}
	if h.Dispatcher == nil {
		out := run(c)
		return out.resp, out.err
	}
	out, err := dispatch.Do(c, h.Dispatcher, run)
	if err != nil {
		return traffic.Response{Flights: []airspace.Flight{}}, err
	}
	return out.resp, out.err
}

// drop answers unsupported requests by closing the connection without
// writing anything. The hijacked writer replaces hertz's response writer, so
// neither a status line nor the router's default 404 body reach the wire.
func (h Handler) drop(c context.Context, ctx *app.RequestContext) {
	if h.Metrics != nil {
		h.Metrics.RecordDropped()
	}
	hlog.CtxDebugf(c, "http: dropped %s %s", ctx.Method(), ctx.Path())
	ctx.SetConnectionClose()
	ctx.Response.HijackWriter(silentWriter{})
	ctx.Abort()
}

// silentWriter discards whatever the framework would have written.
type silentWriter struct{}

func (silentWriter) Write(p []byte) (int, error) { return len(p), nil }

func (silentWriter) Flush() error { return nil }

func (silentWriter) Finalize() error { return nil }
