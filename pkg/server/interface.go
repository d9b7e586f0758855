/*
Package server implements msgpack IPC for ingredient cleaning.

The server reads a stream of msgpack maps from stdin and writes one msgpack
map per request to stdout. Logs go to stderr so the stream stays clean.

# IPC

Each request carries an optional ID, an action and, for cleaning, the raw
ingredient list of one menu item:

	{"id": "req_001", "action": "clean", "i": ["Fresh parsley", "parsley", "10 oz"]}

The response echoes the ID with the cleaned list, its length, how many raw
entries were removed and the time taken in microseconds:

	{"id": "req_001", "i": ["parsley"], "c": 1, "r": 2, "t": 37}

An empty action means "clean". Requests without an ID are assigned a ULID,
so clients can still correlate responses when they pipeline requests.

	{"action": "health"}
	{"id": "r2", "action": "reload"}

reload re-reads the rules file the server was started with and swaps the
cleaner; requests already decoded finish on the old one.

Failures are reported in band and the loop keeps running:

	{"id": "req_002", "e": "batch of 900 ingredients exceeds max of 512", "c": 413}
*/
package server

// Actions understood by the server.
const (
	ActionClean  = "clean"
	ActionHealth = "health"
	ActionReload = "reload"
)

// CleanRequest asks for one ingredient list to be cleaned.
type CleanRequest struct {
	ID          string   `msgpack:"id,omitempty"`
	Action      string   `msgpack:"action,omitempty"`
	Ingredients []string `msgpack:"i,omitempty"`
}

// CleanResponse - cleaned list with timing
type CleanResponse struct {
	ID          string   `msgpack:"id"`
	Ingredients []string `msgpack:"i"`
	Count       int      `msgpack:"c"`
	Removed     int      `msgpack:"r"`
	TimeTaken   int64    `msgpack:"t"`
}

// StatusResponse answers health and reload.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
