//go:build !cgo
// +build !cgo

package wasmgen

const runtimeAvailable = false
