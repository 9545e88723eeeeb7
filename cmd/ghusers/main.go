package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/atomic-arch/ghusers/internal/app"
	"github.com/atomic-arch/ghusers/internal/config"
	"github.com/atomic-arch/ghusers/internal/logger"
	"github.com/atomic-arch/ghusers/pkg/reachability"
	"github.com/spf13/pflag"
)

const usage = `Usage: ghusers <command> [flags]

Commands:
  list     list one page of GitHub users
  detail   show a user's profile
  sync     page through users and publish them to configured sinks
  watch    log network connectivity changes until interrupted
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "ghusers: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(os.Stderr, usage)
		return nil
	}
	cmd, rest := args[0], args[1:]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("ghusers starting", "command", map[string]any{
		"name":     cmd,
		"base_url": cfg.GitHubBaseURL,
		"env":      cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "list":
		return runList(ctx, cfg, log, rest, stdout)
	case "detail":
		return runDetail(ctx, cfg, log, rest, stdout)
	case "sync":
		return runSync(ctx, cfg, log, rest, stdout)
	case "watch":
		return runWatch(ctx, cfg, log, rest, stdout)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newFlagSet(name string) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	output := fs.StringP("output", "o", formatJSON, "output format: json or yaml")
	return fs, output
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.App, error) {
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize app", "error", err.Error())
		return nil, err
	}
	return a, nil
}

func runList(ctx context.Context, cfg *config.Config, log logger.Logger, args []string, stdout io.Writer) error {
	fs, output := newFlagSet("list")
	perPage := fs.Int("per-page", cfg.SyncPerPage, "users per page")
	since := fs.Int("since", 0, "only users with an id greater than this")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	users, err := a.ListUsers(ctx, *perPage, *since)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	return render(stdout, *output, users)
}

func runDetail(ctx context.Context, cfg *config.Config, log logger.Logger, args []string, stdout io.Writer) error {
	fs, output := newFlagSet("detail")
	enrich := fs.Bool("enrich", false, "scrape profile page metadata")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("detail requires exactly one login")
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	detail, err := a.UserDetail(ctx, fs.Arg(0), *enrich)
	if err != nil {
		return fmt.Errorf("user detail: %w", err)
	}
	return render(stdout, *output, detail)
}

func runSync(ctx context.Context, cfg *config.Config, log logger.Logger, args []string, stdout io.Writer) error {
	fs, output := newFlagSet("sync")
	since := fs.Int("since", 0, "start after this user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.Sync(ctx, *since)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	return render(stdout, *output, report)
}

func runWatch(ctx context.Context, cfg *config.Config, log logger.Logger, args []string, stdout io.Writer) error {
	fs, _ := newFlagSet("watch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.ReachabilityCheck = true

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintf(stdout, "connection: %s\n", a.Monitor().ConnectionType())
	return a.Watch(ctx, func(ct reachability.ConnectionType) {
		fmt.Fprintf(stdout, "connection: %s\n", ct)
	})
}
