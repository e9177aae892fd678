//go:build cgo
// +build cgo

package wasmgen

import "github.com/bytecodealliance/wasmtime-go"

// WatToWasm assembles WAT text into a wasm binary.
func WatToWasm(wat string) ([]byte, error) {
	return wasmtime.Wat2Wasm(wat)
}
