//go:build cgo
// +build cgo

package runtime

import (
	"testing"

	"wcc/internal/wasmgen"
)

func TestRunReturnsEntryResult(t *testing.T) {
	wasm, err := wasmgen.WatToWasm(`(module (func (export "_start") (result i32) (i32.const 7)))`)
	if err != nil {
		t.Fatal(err)
	}
	got, err := NewRunner().Run(wasm)
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Errorf("got %d, want 7", got)
	}
}

func TestRunVoidEntry(t *testing.T) {
	wasm, err := wasmgen.WatToWasm(`(module (func (export "_start")))`)
	if err != nil {
		t.Fatal(err)
	}
	got, err := NewRunner().Run(wasm)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestRunMissingStart(t *testing.T) {
	wasm, err := wasmgen.WatToWasm(`(module (func (export "other")))`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewRunner().Run(wasm); err == nil {
		t.Fatal("expected error for missing _start")
	}
}
