//go:build cgo
// +build cgo

// Package runtime instantiates compiled modules under wasmtime and invokes
// their exported entry point.
package runtime

import (
	"errors"
	"fmt"

	"github.com/bytecodealliance/wasmtime-go"
)

type Runner struct {
	engine *wasmtime.Engine
}

func NewRunner() *Runner {
	return &Runner{engine: wasmtime.NewEngine()}
}

// Run instantiates the module and calls its _start export, returning the
// entry function's integer result. A void entry returns 0.
func (r *Runner) Run(wasm []byte) (int64, error) {
	store := wasmtime.NewStore(r.engine)
	module, err := wasmtime.NewModule(r.engine, wasm)
	if err != nil {
		return 0, err
	}
	instance, err := wasmtime.NewInstance(store, module, nil)
	if err != nil {
		return 0, err
	}
	start := instance.GetFunc(store, "_start")
	if start == nil {
		return 0, errors.New("module has no _start export")
	}
	ret, err := start.Call(store)
	if err != nil {
		return 0, err
	}
	switch v := ret.(type) {
	case nil:
		return 0, nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unexpected result type %T", ret)
	}
}
