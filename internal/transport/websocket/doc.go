// Package websocket streams game snapshots to spectators.
//
// A Hub subscribes to one or more games and fans every change out to the
// connected clients as JSON messages:
//
//	{"game_id":"2048","event":"tilt","snapshot":{...}}
//
// Clients are read-only. Whatever they send is discarded; the read loop only
// keeps the connection alive and notices when it closes.
//
// Routes served by NewHandler:
//
//	GET /ws     upgrade to a websocket and receive every following event
//	GET /state  latest snapshot of every watched game as JSON
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//	detach := hub.Watch(g)
//	defer detach()
//	http.ListenAndServe(addr, websocket.NewHandler(hub))
package websocket
