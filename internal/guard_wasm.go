//go:build wasm

package internal

// wasm has no goroutine ids, so every goroutine counts as the guard's owner.
// The guard then only tracks depth: a listener that blocks (on a channel, a
// timer, a js callback) lets another goroutine run store calls inside the
// notification as if it were re-entering. Keep listeners non-blocking on wasm.
func getGID() int64 {
	return 1
}
