// Package xmain runs a command's main: it wires stdio, the environment, flag
// parsing and logging into a State and maps returned errors to exit codes.
package xmain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"
)

const SHUTDOWN_TIMEOUT = 30 * time.Second

type RunFunc func(context.Context, *State) error

type State struct {
	Name string

	Stdin  io.Reader
	Stdout io.WriteCloser
	Stderr io.WriteCloser

	Log  *cmdlog.Logger
	Env  *xos.Env
	Opts *Opts
}

// NewState builds a State over the given streams. Tests use it to drive a
// RunFunc without touching the process.
func NewState(name string, args []string, env *xos.Env, stdin io.Reader, stdout, stderr io.WriteCloser) *State {
	ms := &State{
		Name:   name,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Env:    env,
	}
	ms.Log = cmdlog.Log(env, stderr)
	ms.Opts = NewOpts(env, ms.Log, args)
	return ms
}

func Main(run RunFunc) {
	var name string
	var args []string
	if len(os.Args) > 0 {
		name, args = filepath.Base(os.Args[0]), os.Args[1:]
	}
	ms := NewState(name, args, xos.NewEnv(os.Environ()), os.Stdin, os.Stdout, os.Stderr)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	os.Exit(ms.exitCode(ms.Run(context.Background(), sigs, run)))
}

// Run calls run and cancels its context on the first signal. It waits up to
// SHUTDOWN_TIMEOUT for run to return after that.
func (ms *State) Run(ctx context.Context, sigs <-chan os.Signal, run RunFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, ms)
	}()

	var sig os.Signal
	select {
	case err := <-done:
		return err
	case sig = <-sigs:
	}

	ms.Log.Warn.Printf("received %v, stopping", sig)
	cancel()
	timer := time.NewTimer(SHUTDOWN_TIMEOUT)
	defer timer.Stop()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("failed to stop cleanly: %w", err)
		}
		if sig == syscall.SIGTERM {
			return nil
		}
		return ExitError{Code: 130}
	case <-timer.C:
		return ExitErrorf(1, "still running %v after %v, exiting", sig, SHUTDOWN_TIMEOUT)
	}
}

// exitCode logs err and returns the process exit code for it.
func (ms *State) exitCode(err error) int {
	if err == nil {
		return 0
	}
	var eerr ExitError
	var uerr UsageError
	switch {
	case errors.As(err, &eerr):
		if eerr.Message != "" {
			ms.Log.Error.Print(eerr.Message)
		}
		return eerr.Code
	case errors.As(err, &uerr):
		ms.Log.Error.Printf("%v\nRun with --help to see usage.", err)
		return 2
	default:
		ms.Log.Error.Print(err.Error())
		return 1
	}
}

type ExitError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func ExitErrorf(code int, msg string, v ...interface{}) ExitError {
	return ExitError{Code: code, Message: fmt.Sprintf(msg, v...)}
}

func (ee ExitError) Error() string {
	if ee.Message == "" {
		return fmt.Sprintf("exit status %d", ee.Code)
	}
	return fmt.Sprintf("exit status %d: %s", ee.Code, ee.Message)
}

type UsageError struct {
	Message string `json:"message"`
}

func UsageErrorf(msg string, v ...interface{}) UsageError {
	return UsageError{Message: fmt.Sprintf(msg, v...)}
}

func (ue UsageError) Error() string {
	return "bad usage: " + ue.Message
}

// ReadPath reads fp, or stdin when fp is "-".
func (ms *State) ReadPath(fp string) ([]byte, error) {
	if fp == "-" {
		return io.ReadAll(ms.Stdin)
	}
	return os.ReadFile(fp)
}

// WritePath writes p to fp, or to stdout when fp is "-".
func (ms *State) WritePath(fp string, p []byte) error {
	if fp != "-" {
		return os.WriteFile(fp, p, 0644)
	}
	if _, err := ms.Stdout.Write(p); err != nil {
		return err
	}
	return ms.Stdout.Close()
}

// HumanPath returns fp relative to the working directory when that is shorter.
func (ms *State) HumanPath(fp string) string {
	switch fp {
	case "-":
		return "stdin"
	}
	wd, err := os.Getwd()
	if err != nil {
		return fp
	}
	rel, err := filepath.Rel(wd, fp)
	if err != nil || len(rel) > len(fp) {
		return fp
	}
	return rel
}
