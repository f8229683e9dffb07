package tracer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	ext "github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"
	config "github.com/uber/jaeger-client-go/config"

	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/pkg/shared"
)

const skipTracer shared.ContextKey = "skipTracer"

// Tracer abstraction
type Tracer interface {
	Context() context.Context
	Tags() map[string]interface{}
	SetTag(key string, value interface{})
	InjectHTTPHeader(req *http.Request)
	SetError(err error)
	Log(key string, value interface{})
	Finish(additionalTags ...map[string]interface{})
}

// InitOpenTracing init jaeger tracing
func InitOpenTracing(serviceName string) error {
	agentHost := env.BaseEnv().JaegerTracingHost
	if level := env.BaseEnv().Environment; level != "" {
		serviceName = fmt.Sprintf("%s-%s", serviceName, strings.ToLower(level))
	}
	defaultTags := []opentracing.Tag{
		{Key: "num_cpu", Value: runtime.NumCPU()},
		{Key: "go_version", Value: runtime.Version()},
	}
	if env.BaseEnv().MaxGoroutines > 0 {
		defaultTags = append(defaultTags, opentracing.Tag{
			Key: "max_goroutines", Value: env.BaseEnv().MaxGoroutines,
		})
	}
	cfg := &config.Configuration{
		Sampler: &config.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &config.ReporterConfig{
			LogSpans:            true,
			BufferFlushInterval: 1 * time.Second,
			LocalAgentHostPort:  agentHost,
		},
		ServiceName: serviceName,
		Tags:        defaultTags,
	}
	tracer, _, err := cfg.NewTracer(config.MaxTagValueLength(math.MaxInt32))
	if err != nil {
		log.Printf("ERROR: cannot init opentracing connection: %v\n", err)
		return err
	}
	opentracing.SetGlobalTracer(tracer)
	return nil
}

// SkipTraceContext inject to context for skip span tracer
func SkipTraceContext(ctx context.Context) context.Context {
	return shared.SetToContext(ctx, skipTracer, true)
}

type jaegerImpl struct {
	ctx  context.Context
	span opentracing.Span
	tags map[string]interface{}
}

// StartTrace starting trace child span from parent span
func StartTrace(ctx context.Context, operationName string) Tracer {
	if shared.GetValueFromContext(ctx, skipTracer) != nil {
		return &jaegerImpl{ctx: ctx}
	}

	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		// init new span
		span, ctx = opentracing.StartSpanFromContext(ctx, operationName)
	} else {
		span = opentracing.GlobalTracer().StartSpan(operationName, opentracing.ChildOf(span.Context()))
		ctx = opentracing.ContextWithSpan(ctx, span)
	}
	return &jaegerImpl{
		ctx:  ctx,
		span: span,
	}
}

// StartTraceWithContext starting trace child span from parent span, returning tracer and context
func StartTraceWithContext(ctx context.Context, operationName string) (Tracer, context.Context) {
	t := StartTrace(ctx, operationName)
	return t, t.Context()
}

// StartTraceFromHeader starting root span from incoming request header
func StartTraceFromHeader(ctx context.Context, operationName string, header http.Header) (Tracer, context.Context) {
	globalTracer := opentracing.GlobalTracer()
	spanCtx, _ := globalTracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(header))
	span := globalTracer.StartSpan(operationName, ext.RPCServerOption(spanCtx))
	ctx = opentracing.ContextWithSpan(ctx, span)

	return &jaegerImpl{
		ctx:  ctx,
		span: span,
	}, ctx
}

// Context get active context
func (t *jaegerImpl) Context() context.Context {
	return t.ctx
}

// Tags create tags in tracer span
func (t *jaegerImpl) Tags() map[string]interface{} {
	t.tags = make(map[string]interface{})
	return t.tags
}

// SetTag set tags in tracer span
func (t *jaegerImpl) SetTag(key string, value interface{}) {
	if t.span == nil {
		return
	}

	if t.tags == nil {
		t.tags = make(map[string]interface{})
	}
	t.tags[key] = value
}

// InjectHTTPHeader to continue tracer to http request host
func (t *jaegerImpl) InjectHTTPHeader(req *http.Request) {
	if t.span == nil {
		return
	}
	ext.SpanKindRPCClient.Set(t.span)
	t.span.Tracer().Inject(
		t.span.Context(),
		opentracing.HTTPHeaders,
		opentracing.HTTPHeadersCarrier(req.Header),
	)
}

// SetError set error in span
func (t *jaegerImpl) SetError(err error) {
	SetError(t.ctx, err)
}

// Log data
func (t *jaegerImpl) Log(key string, value interface{}) {
	Log(t.ctx, key, value)
}

// Finish trace with additional tags data, must in deferred function
func (t *jaegerImpl) Finish(additionalTags ...map[string]interface{}) {
	if t.span == nil {
		return
	}

	defer t.span.Finish()
	if additionalTags != nil && t.tags == nil {
		t.tags = make(map[string]interface{})
	}

	for _, tag := range additionalTags {
		for k, v := range tag {
			t.tags[k] = v
		}
	}

	for k, v := range t.tags {
		t.span.SetTag(k, toString(v))
	}
	t.span.SetTag("num_goroutines", runtime.NumGoroutine())
}

// Log trace
func Log(ctx context.Context, key string, value interface{}) {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return
	}

	span.LogKV(key, toString(value))
}

// SetError func
func SetError(ctx context.Context, err error) {
	span := opentracing.SpanFromContext(ctx)
	if span == nil || err == nil {
		return
	}

	ext.Error.Set(span, true)
	span.SetTag("error.message", err.Error())
	span.LogFields(otlog.String("stacktrace", string(debug.Stack())))
}

func toString(v interface{}) (s string) {
	switch val := v.(type) {
	case error:
		if val != nil {
			s = val.Error()
		}
	case string:
		s = val
	case int:
		s = strconv.Itoa(val)
	case []byte:
		s = string(val)
	default:
		b, _ := json.Marshal(val)
		s = string(b)
	}

	if max := maxTagSize(); len(s) >= max {
		return fmt.Sprintf("<<Overflow, cannot show data. Size is = %d bytes, JAEGER_MAX_PACKET_SIZE = %d bytes>>", len(s), max)
	}
	return
}

func maxTagSize() int {
	if max := env.BaseEnv().JaegerMaxPacketSize; max > 0 {
		return max
	}
	return 65000
}

// GetTraceID func
func GetTraceID(ctx context.Context) string {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return ""
	}

	traceID := fmt.Sprintf("%+v", span)
	splits := strings.Split(traceID, ":")
	if len(splits) > 0 {
		return splits[0]
	}

	return traceID
}

// GetTraceURL log trace url
func GetTraceURL(ctx context.Context) (u string) {
	traceID := GetTraceID(ctx)
	if traceID == "" {
		return
	}

	urlAgent, err := url.Parse("//" + env.BaseEnv().JaegerTracingHost)
	if urlAgent != nil && err == nil {
		u = fmt.Sprintf("http://%s:16686/trace/%s", urlAgent.Hostname(), traceID)
	}
	return
}
