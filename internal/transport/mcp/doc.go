// Package mcp exposes a tilt game to AI agents over the Model Context
// Protocol.
//
// The server owns one game at a time. Tools:
//   - new_game: start a new game of a registered variant
//   - game_state: board, score and the directions that would change it
//   - move: tilt toward a side and spawn a tile, as a player move does
//   - bulk_move: several moves in order, stopping when the game ends
//   - tilt: tilt without spawning, for setting up positions
//   - add_tile / spawn_tile / restore: edit the board directly
//   - list_variants: registered variants
//   - game_instructions: rules and tool usage
//
// Finished games are recorded in the score store when one is configured,
// and every change can be mirrored to a websocket hub for spectators.
//
// Usage:
//
//	srv, err := mcp.NewServer(mcp.Options{Variant: "2048", Store: store})
//	if err != nil {
//		return err
//	}
//	return srv.ServeStdio()
package mcp
