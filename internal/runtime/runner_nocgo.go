//go:build !cgo
// +build !cgo

package runtime

import "errors"

type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Run(wasm []byte) (int64, error) {
	return 0, errors.New("running modules requires cgo (wasmtime-go)")
}
