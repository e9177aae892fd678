//go:build !cgo
// +build !cgo

package wasmgen

import "errors"

func WatToWasm(wat string) ([]byte, error) {
	return nil, errors.New("wat2wasm requires cgo (wasmtime-go)")
}
