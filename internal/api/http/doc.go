/*
Package http exposes the calculator over a JSON API.

Routes:

	GET    /                        service status
	GET    /health                  catalogue size and session stats
	GET    /metrics/json            metric snapshot
	POST   /calculate               evaluate {expression}
	POST   /convert                 convert {value, from, to}
	GET    /units?dimension=        list catalogue units
	GET    /prefixes                list metric prefixes
	POST   /sessions                open a session
	GET    /sessions                list sessions
	GET    /sessions/:id            describe a session
	DELETE /sessions/:id            close a session
	POST   /sessions/:id/eval       evaluate {input} in a session
	GET    /sessions/:id/variables  list session variables
	POST   /sessions/:id/save       snapshot a session
	POST   /sessions/:id/restore    reload a session from its snapshot

Input errors return 400, unknown sessions or snapshots 404. Every error
body carries "error" and a stable "code".
*/
package http
