// Package sandbox executes learner submissions inside a restricted yaegi
// interpreter. Submissions never reach the host toolchain or a shell: code is
// interpreted in-process with a stdlib whitelist, no filesystem, network, or
// exec access, and a context deadline around the call.
package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/drillhq/drill/internal/validate"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Symbols maps "importPath/pkgName" to exported values, the shape yaegi
// expects for injected packages.
type Symbols = interp.Exports

// EntryPoint is the function a submission must define.
const EntryPoint = "Solve"

// DefaultTimeout bounds a single interpreted run.
const DefaultTimeout = 30 * time.Second

// Interpreter runs code under a package whitelist.
type Interpreter struct {
	allowed map[string]bool
	timeout time.Duration
}

// New returns an interpreter with the default safe stdlib whitelist.
func New(timeout time.Duration) *Interpreter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Interpreter{
		timeout: timeout,
		allowed: map[string]bool{
			"fmt":           true,
			"strings":       true,
			"strconv":       true,
			"errors":        true,
			"math":          true,
			"regexp":        true,
			"sort":          true,
			"bytes":         true,
			"time":          true,
			"encoding/json": true,

			// Blocked: os, os/exec, net, net/http, syscall, unsafe,
			// path/filepath, io/ioutil. Anything not listed is rejected
			// before evaluation.
		},
	}
}

// Allow whitelists an additional import path, used for injected packages.
func (s *Interpreter) Allow(path string) {
	s.allowed[path] = true
}

// syncBuffer guards output writes: interpreted code keeps writing from its
// own goroutine while Run reads on the timeout path.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Run interprets a submission and calls its Solve function. The returned
// output is everything the submission printed followed by Solve's return
// value. Interpreter faults come back as errors, never panics.
//
// The deadline covers all interpreted execution, including package-level
// initializers. On timeout the interpreter is stopped, which cancels
// interpreted loops; a Solve blocked inside a native call still drains in the
// background, but Run has already returned.
func (s *Interpreter) Run(ctx context.Context, code string, extra Symbols) (string, error) {
	if err := s.checkImports(code); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var stdout syncBuffer
	i := interp.New(interp.Options{Stdout: &stdout, Stderr: &stdout})

	if err := i.Use(stdlib.Symbols); err != nil {
		return "", fmt.Errorf("load stdlib symbols: %w", err)
	}
	if len(extra) > 0 {
		if err := i.Use(extra); err != nil {
			return "", fmt.Errorf("load injected symbols: %w", err)
		}
	}

	// Top-level declarations can carry arbitrary initializer code, so they
	// run under the same deadline as the Solve call.
	if err := safeEval(ctx, i, validate.EnsureMainPackage(code)); err != nil {
		return stdout.String(), fmt.Errorf("interpret submission: %w", err)
	}

	entry, err := i.Eval("main." + EntryPoint)
	if err != nil {
		return stdout.String(), fmt.Errorf("%s function not found: %w", EntryPoint, err)
	}

	solve, ok := entry.Interface().(func() (string, error))
	if !ok {
		return stdout.String(), fmt.Errorf("%s has wrong signature, want func() (string, error)", EntryPoint)
	}

	type outcome struct {
		value string
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("submission panicked: %v", r)}
			}
		}()
		v, err := solve()
		done <- outcome{value: v, err: err}
	}()

	select {
	case out := <-done:
		combined := stdout.String()
		if out.value != "" {
			combined += out.value
		}
		if out.err != nil {
			return combined, fmt.Errorf("submission returned error: %w", out.err)
		}
		return combined, nil
	case <-ctx.Done():
		return stdout.String(), fmt.Errorf("submission timed out: %w", ctx.Err())
	}
}

// safeEval converts interpreter panics into errors; the context deadline
// bounds the evaluation itself.
func safeEval(ctx context.Context, i *interp.Interpreter, code string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("interpreter panic: %v", r)
		}
	}()
	_, err = i.EvalWithContext(ctx, code)
	return err
}

// checkImports rejects any import outside the whitelist before evaluation.
func (s *Interpreter) checkImports(code string) error {
	var forbidden []string

	inBlock := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
			continue
		case inBlock && strings.HasPrefix(trimmed, ")"):
			inBlock = false
			continue
		}

		var pkg string
		if inBlock {
			pkg = trimmed
		} else if strings.HasPrefix(trimmed, "import ") {
			pkg = strings.TrimPrefix(trimmed, "import ")
		} else {
			continue
		}

		// Strip an alias and the quotes.
		if idx := strings.LastIndex(pkg, `"`); idx >= 0 {
			if start := strings.Index(pkg, `"`); start < idx {
				pkg = pkg[start+1 : idx]
			}
		}
		pkg = strings.TrimSpace(pkg)
		if pkg == "" {
			continue
		}

		if !s.allowed[pkg] {
			forbidden = append(forbidden, pkg)
		}
	}

	if len(forbidden) > 0 {
		return fmt.Errorf("forbidden imports: %s", strings.Join(forbidden, ", "))
	}
	return nil
}

// Package builds an injectable package symbol table from plain Go values.
// path is the import path submissions use; name is the package identifier.
func Package(path, name string, values map[string]any) Symbols {
	symbols := make(map[string]reflect.Value, len(values))
	for ident, v := range values {
		symbols[ident] = reflect.ValueOf(v)
	}
	return Symbols{path + "/" + name: symbols}
}
