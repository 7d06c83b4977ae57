/*
Command server runs the ucalc HTTP and WebSocket service.

Configuration comes from the environment (PORT, HOST, LOG_LEVEL, LOG_DEV,
RATE_LIMIT_*, UNITS_DIR, UNITS_URL, UNITS_TIMEOUT, SESSION_STORE_PATH,
SESSION_MAX_IDLE). Flags override it:

	server -port 8080 -units-dir ./units -store /var/lib/ucalc
*/
package main
