package bugclient

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:8080"

// RunCLI runs one bugctl command. Results are printed to stdout as JSON.
func RunCLI(prog string, args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		return UsageError{Program: prog}
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "send":
		err = runSend(rest, stdout)
	case "bugs":
		err = runBugs(rest, stdout)
	case "users":
		err = runUsers(rest, stdout)
	default:
		return UsageError{Program: prog}
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return err
}

type UsageError struct {
	Program string
}

func (u UsageError) Error() string {
	if u.Program == "" {
		u.Program = "bugctl"
	}
	return fmt.Sprintf("Usage: %s <command> [options]", u.Program)
}

func (UsageError) UsageLines() []string {
	return []string{
		"Commands:",
		"  send      Submit an event (JSON from -event or stdin)",
		"  bugs      List one page of ingested events",
		"  users     List all users",
	}
}

type commonFlags struct {
	url     *string
	timeout *time.Duration
}

func newFlagSet(name string) (*flag.FlagSet, commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs, commonFlags{
		url:     fs.String("url", getenv("BUGCTL_URL", defaultBaseURL), "buglog base URL"),
		timeout: fs.Duration("timeout", defaultTimeout, "request timeout"),
	}
}

func (c commonFlags) client() *Client { return New(*c.url, *c.timeout) }

func runSend(args []string, stdout io.Writer) error {
	fs, common := newFlagSet("send")
	event := fs.String("event", "", "event JSON; read from stdin when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	raw := strings.TrimSpace(*event)
	if raw == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		raw = strings.TrimSpace(string(data))
	}
	if !json.Valid([]byte(raw)) {
		return errors.New("event is not valid JSON")
	}
	if err := common.client().SendEvent(context.Background(), json.RawMessage(raw)); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "event accepted")
	return nil
}

func runBugs(args []string, stdout io.Writer) error {
	fs, common := newFlagSet("bugs")
	pageNo := fs.Int("page", 1, "page number")
	pageSize := fs.Int("size", 10, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	page, err := common.client().Bugs(context.Background(), *pageNo, *pageSize)
	if err != nil {
		return err
	}
	return printJSON(stdout, page)
}

func runUsers(args []string, stdout io.Writer) error {
	fs, common := newFlagSet("users")
	if err := fs.Parse(args); err != nil {
		return err
	}
	users, err := common.client().Users(context.Background())
	if err != nil {
		return err
	}
	return printJSON(stdout, users)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
