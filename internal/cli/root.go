// Package cli implements the vaultpass command line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vaultpass/vaultpass-client/internal/client"
	"github.com/vaultpass/vaultpass-client/internal/config"
	"github.com/vaultpass/vaultpass-client/internal/service"
)

// Options wires the CLI to its environment. Zero fields fall back to the
// process's stdio and the system clipboard.
type Options struct {
	Out       io.Writer
	Err       io.Writer
	Prompt    Prompter
	Clipboard func(string) error
}

type app struct {
	cfg    config.Config
	out    io.Writer
	prompt Prompter
	clip   func(string) error

	api   *client.Client
	auth  *service.AuthService
	vault *service.VaultService
	gen   *service.GeneratorService
}

// NewRootCommand builds the vaultpass command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Prompt == nil {
		opts.Prompt = NewTerminalPrompter(os.Stdin, opts.Err)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	a := &app{out: opts.Out, prompt: opts.Prompt, clip: opts.Clipboard}

	var (
		apiURL  string
		verbose bool
	)

	root := &cobra.Command{
		Use:           "vaultpass",
		Short:         "VaultPass password manager client",
		Long:          "Generate strong passwords and manage the credentials stored in your VaultPass vault.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setup(apiURL, verbose, opts.Err)
			return nil
		},
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "vault API base URL (overrides VAULTPASS_API_URL)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log API requests")

	root.AddCommand(
		a.generateCommand(),
		a.strengthCommand(),
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.changePasswordCommand(),
		a.listCommand(),
		a.addCommand(),
		a.editCommand(),
		a.deleteCommand(),
		a.copyCommand(),
	)

	return root
}

func (a *app) setup(apiURL string, verbose bool, errOut io.Writer) {
	// The per-user env file only fills variables that are not already set.
	_ = godotenv.Load(filepath.Join(config.Dir(), "env"))

	a.cfg = config.Load()
	if apiURL != "" {
		a.cfg.APIURL = apiURL
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	a.api = client.New(a.cfg.APIURL,
		client.WithTimeout(a.cfg.RequestTimeout),
		client.WithLogger(logger),
	)
	a.auth = service.NewAuthService(a.api, client.NewSessionStore(a.cfg.SessionFile))
	a.vault = service.NewVaultService(a.api)
	a.gen = service.NewGeneratorService(nil)
}

// session returns the stored session or a message telling the user to log in.
func (a *app) session() (*client.Session, error) {
	sess, err := a.auth.Session()
	switch {
	case errors.Is(err, client.ErrNoSession):
		return nil, fmt.Errorf("not logged in, run 'vaultpass login' first")
	case errors.Is(err, client.ErrSessionExpired):
		return nil, fmt.Errorf("session expired, run 'vaultpass login' again")
	}
	return sess, err
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCommand(Options{})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %s\n", describeError(err))
		return 1
	}
	return 0
}

func describeError(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}
