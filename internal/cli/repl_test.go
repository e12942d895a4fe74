package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunREPL(t *testing.T) {
	var calls [][]string
	cmds := []command{
		{"echo", "record args", []string{"standard"}, func(_ context.Context, args []string) error {
			calls = append(calls, args)
			return nil
		}},
		{"boom", "fail", []string{"standard"}, func(context.Context, []string) error {
			return errors.New("kaput")
		}},
		{"admin-only", "hidden", []string{"admin"}, func(context.Context, []string) error {
			t.Fatal("must not run")
			return nil
		}},
	}

	var out bytes.Buffer
	in := readerFromLines("echo a b", "", "boom", "admin-only", "nope", "help", "exit", "echo never")
	runREPL(context.Background(), cmds, func() string { return "standard" }, func() string { return "(bob)" }, in, &out)

	assert.Equal(t, [][]string{{"a", "b"}}, calls)
	s := out.String()
	assert.Contains(t, s, "sb (bob)> ")
	assert.Contains(t, s, "error: kaput")
	assert.Contains(t, s, "Unknown command: admin-only")
	assert.Contains(t, s, "Unknown command: nope")
	assert.Contains(t, s, "echo")
	assert.NotContains(t, s, "hidden")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_QuitFromCommand(t *testing.T) {
	ran := 0
	cmds := []command{
		{"stop", "", []string{""}, func(context.Context, []string) error { return errQuit }},
		{"count", "", []string{""}, func(context.Context, []string) error { ran++; return nil }},
	}
	var out bytes.Buffer
	runREPL(context.Background(), cmds, func() string { return "" }, func() string { return "" },
		readerFromLines("count", "stop", "count"), &out)
	assert.Equal(t, 1, ran)
	assert.NotContains(t, out.String(), "error:")
}

func TestRunREPL_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	runREPL(ctx, nil, func() string { return "" }, func() string { return "" }, readerFromLines("help"), &out)
	assert.Empty(t, out.String())
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	ran := false
	cmds := []command{{"go", "", []string{""}, func(context.Context, []string) error { ran = true; return nil }}}
	in := bufio.NewReader(strings.NewReader("go"))
	runREPL(context.Background(), cmds, func() string { return "" }, func() string { return "" }, in, &bytes.Buffer{})
	assert.True(t, ran)
}
