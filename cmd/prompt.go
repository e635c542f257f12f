package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/teemow/gcal-reminder/internal/reminder"
)

// stdinPrompt prints the consent URL to out and reads the authorization code
// from the first non-empty line of in. Reading stops when ctx is cancelled.
func stdinPrompt(in io.Reader, out io.Writer) reminder.CodePrompt {
	return func(ctx context.Context, consentURL string) (string, error) {
		fmt.Fprintln(out, "Open the following URL in your browser and authorize access:")
		fmt.Fprintln(out)
		fmt.Fprintln(out, consentURL)
		fmt.Fprintln(out)
		fmt.Fprint(out, "Enter the authorization code: ")

		type result struct {
			code string
			err  error
		}
		done := make(chan result, 1)

		go func() {
			scanner := bufio.NewScanner(in)
			for scanner.Scan() {
				if code := extractCode(scanner.Text()); code != "" {
					done <- result{code: code}
					return
				}
			}
			err := scanner.Err()
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			done <- result{err: fmt.Errorf("no authorization code entered: %w", err)}
		}()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case r := <-done:
			return r.code, r.err
		}
	}
}

// staticPrompt returns a fixed code and prints nothing.
func staticPrompt(code string) reminder.CodePrompt {
	return func(ctx context.Context, _ string) (string, error) {
		if code == "" {
			return "", errors.New("authorization code is empty")
		}
		return code, nil
	}
}

// extractCode accepts either the bare code or the full redirect URL the
// browser landed on, from which the code query parameter is taken.
func extractCode(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	if strings.Contains(line, "://") {
		if u, err := url.Parse(line); err == nil {
			if code := u.Query().Get("code"); code != "" {
				return code
			}
		}
	}
	return line
}
