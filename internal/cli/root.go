// Package cli implements the helipad command line tool.
//
// Credentials and the service origin come from the environment (or a .env
// file in the working directory):
//
//	HELIPAD_EMAIL     account email (required)
//	HELIPAD_PASSWORD  account password (required)
//	HELIPAD_BASE_URL  service origin, default http://pad.helicoid.net
//	HELIPAD_TIMEOUT   request timeout in seconds, default 30
//	LOG_LEVEL         debug, info, warn or error
package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/padkit/helipad/internal/config"
	"github.com/padkit/helipad/pkg/helipad"
	"github.com/padkit/helipad/pkg/logger"
	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	out    io.Writer
	in     io.Reader
	format string
	client *helipad.Client
}

// Execute runs the root command against the process's stdio.
func Execute() error {
	cmd := NewRootCommand(os.Stdin, os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// NewRootCommand builds the command tree. Output goes to out; a source file
// argument of "-" reads from in.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:   "helipad",
		Short: "Manage notes in a Helipad account",
		Long: `helipad talks to the Helipad XML API: create, read, search, update and
delete the notes in one account.

Examples:
  helipad list                          # every document
  helipad create --title "Cake" --tags "recipe dessert" --source-file cake.md
  helipad find chocolate                # text search
  helipad find --tag recipe -f json     # tag search, JSON output
  helipad update 42 --title "Better cake"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(a.format); err != nil {
				return err
			}
			return a.connect()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "table", "output format (table, json, yaml)")

	root.AddCommand(
		newCreateCommand(a),
		newGetCommand(a),
		newListCommand(a),
		newTitlesCommand(a),
		newHTMLCommand(a),
		newFindCommand(a),
		newUpdateCommand(a),
		newDestroyCommand(a),
	)
	return root
}

func (a *app) connect() error {
	cfg, err := config.Client()
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel)
	c, err := helipad.New(cfg.Email, cfg.Password,
		helipad.WithBaseURL(cfg.BaseURL),
		helipad.WithHTTPClient(&http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}),
	)
	if err != nil {
		return err
	}
	a.client = c
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid document id %q", arg)
	}
	return id, nil
}
