/*
Package tracing provides lightweight request tracing.

Every HTTP request gets a span. An incoming X-Trace-ID joins the caller's
trace, otherwise a new one is started. Both ids are echoed in the response
headers. Finished spans are logged by a background collector at debug
level, or at warn level when the handler attached an error.

	tracer := tracing.New("ucalc", logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))
*/
package tracing
