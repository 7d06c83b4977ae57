/*
Package monitoring collects Prometheus metrics for the calculator service.

# Overview

Each Metrics value owns a private registry covering HTTP traffic,
expression evaluations, sessions, the unit catalogue and WebSocket
connections. Metrics satisfies session.Metrics so the session manager can
report directly into it.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "http")
	_, err := calc.Calculate(expr)
	timer.Stop(err)
*/
package monitoring
