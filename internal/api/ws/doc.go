/*
Package ws serves an interactive calculator over WebSocket at /stream.

Each connection owns a session that lives as long as the connection.
Clients send {"type": "eval", "input": "..."}, {"type": "reset"} or
{"type": "ping"}; the server answers with result, error, system or pong
messages that all carry the session id.
*/
package ws
