// Command basic demonstrates using an Enclave to run a sandboxed script
// that calls back into the host.
package main

import (
	"fmt"
	"time"

	"github.com/go-enclave/enclave"
	"github.com/go-enclave/enclave/domain/sandbox"
)

func main() {
	e, err := enclave.New(
		enclave.WithTimeout(2*time.Second),
		enclave.WithMemoryLimit(4<<20),
	)
	if err != nil {
		panic(err)
	}
	defer e.Close()

	err = e.Expose("greet", func(args []sandbox.Value) (sandbox.Value, error) {
		name := "world"
		if len(args) > 0 {
			name = args[0].AsString()
		}
		return sandbox.Str("hello, " + name), nil
	})
	if err != nil {
		panic(err)
	}

	result, _ := e.Eval(`x = 1 + 2
p(x)
greet("enclave")`)
	fmt.Println(result.String())

	// The persistent globals survive across Eval calls.
	result, _ = e.Eval(`x * 10`)
	fmt.Println(result.String())

	e.Reset()
	result, _ = e.Eval(`x`)
	fmt.Println(result.String()) // undefined: x no longer exists after Reset
}
