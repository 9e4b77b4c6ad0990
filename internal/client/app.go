package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/adapter"
	"github.com/MKhiriev/kiosk-gate/internal/app"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/models"
)

// DefaultWatchInterval matches the server-side expiry poll.
const DefaultWatchInterval = 30 * time.Second

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong number of arguments")
)

// Picker runs the interactive kiosk picker.
type Picker interface {
	Picker(ctx context.Context) (models.AuthSession, error)
}

// App runs kioskctl commands against one server adapter. The adapter keeps
// the bearer token between the commands of a shell session.
type App struct {
	adapter adapter.ServerAdapter
	picker  Picker
	out     io.Writer
	logger  *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, picker Picker, out io.Writer, logger *logger.Logger) *App {
	return &App{adapter: serverAdapter, picker: picker, out: out, logger: logger}
}

type command struct {
	usage   string
	minArgs int
	maxArgs int // -1 means unbounded
	run     func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"version":   {usage: "version", run: (*App).version},
	"profiles":  {usage: "profiles", run: (*App).profiles},
	"signup":    {usage: "signup <name> <pin> <role>", minArgs: 3, maxArgs: 3, run: (*App).signup},
	"login":     {usage: "login <name> <pin>", minArgs: 2, maxArgs: 2, run: (*App).login},
	"login-id":  {usage: "login-id <profile-id> <pin>", minArgs: 2, maxArgs: 2, run: (*App).loginByID},
	"logout":    {usage: "logout", run: (*App).logout},
	"session":   {usage: "session", run: (*App).session},
	"watch":     {usage: "watch [interval]", maxArgs: 1, run: (*App).watch},
	"pin":       {usage: "pin <old-pin> <new-pin>", minArgs: 2, maxArgs: 2, run: (*App).changePin},
	"reset-pin": {usage: "reset-pin <profile-id>", minArgs: 1, maxArgs: 1, run: (*App).resetPin},
	"suspend":   {usage: "suspend <profile-id> <reason...>", minArgs: 1, maxArgs: -1, run: (*App).suspend},
	"unsuspend": {usage: "unsuspend <profile-id>", minArgs: 1, maxArgs: 1, run: (*App).unsuspend},
	"audit":     {usage: "audit [limit]", maxArgs: 1, run: (*App).audit},
	"picker":    {usage: "picker", run: (*App).runPicker},
}

// Run executes one command. "shell" reads further commands line by line
// from in until EOF or "exit".
func (a *App) Run(ctx context.Context, args []string, in io.Reader) error {
	if len(args) == 0 || args[0] == "help" {
		a.usage()
		return nil
	}
	if args[0] == "shell" {
		return a.shell(ctx, in)
	}
	return a.dispatch(ctx, args)
}

func (a *App) dispatch(ctx context.Context, args []string) error {
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}

	rest := args[1:]
	if len(rest) < cmd.minArgs || (cmd.maxArgs >= 0 && len(rest) > cmd.maxArgs) {
		return fmt.Errorf("%w: usage: %s", ErrUsage, cmd.usage)
	}

	return cmd.run(a, ctx, rest)
}

func (a *App) shell(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, "kiosk> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return scanner.Err()
		}

		args := strings.Fields(scanner.Text())
		switch {
		case len(args) == 0:
			continue
		case args[0] == "exit" || args[0] == "quit":
			return nil
		case args[0] == "help":
			a.usage()
			continue
		}

		if err := a.dispatch(ctx, args); err != nil {
			a.logger.Err(err).Str("func", "*App.shell").Str("command", args[0]).Msg("command failed")
			fmt.Fprintf(a.out, "error: %s\n", app.Describe(err))
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "usage: kioskctl [flags] <command> [args]")
	fmt.Fprintln(a.out, "\ncommands:")
	for _, name := range sortedCommandNames() {
		fmt.Fprintf(a.out, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(a.out, "  shell")
}

// ── commands ───────────────────────────────────────────────────────────────

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.adapter.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "server version: %s\n", v)
	return nil
}

func (a *App) profiles(ctx context.Context, _ []string) error {
	profiles, err := a.adapter.Profiles(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tROLE\tONLINE\tPIN RESET")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\n", p.ID, p.Name, p.Role, p.Online, p.PinResetRequired)
	}
	return tw.Flush()
}

func (a *App) signup(ctx context.Context, args []string) error {
	result, err := a.adapter.Signup(ctx, models.SignupRequest{Name: args[0], PIN: args[1], Role: models.Role(args[2])})
	if err != nil {
		return err
	}
	if result.Profile != nil {
		fmt.Fprintf(a.out, "created profile %s (%s)\n", result.Profile.ID, result.Profile.Name)
	}
	if result.Session != nil {
		a.printSession(*result.Session)
	}
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	session, err := a.adapter.LoginByName(ctx, models.LoginByNameRequest{Name: args[0], PIN: args[1]})
	if err != nil {
		return err
	}
	a.printSession(session)
	return nil
}

func (a *App) loginByID(ctx context.Context, args []string) error {
	session, err := a.adapter.Login(ctx, models.LoginRequest{ProfileID: args[0], PIN: args[1]})
	if err != nil {
		return err
	}
	a.printSession(session)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.adapter.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) session(ctx context.Context, _ []string) error {
	status, err := a.adapter.Session(ctx)
	if err != nil {
		return err
	}
	switch {
	case status.Expired:
		fmt.Fprintln(a.out, app.MsgSessionExpired)
	case status.Session == nil:
		fmt.Fprintln(a.out, "no active session")
	default:
		a.printSession(*status.Session)
	}
	return nil
}

// watch polls the session slot until it expires or ctx is cancelled.
func (a *App) watch(ctx context.Context, args []string) error {
	interval := DefaultWatchInterval
	if len(args) == 1 {
		d, err := time.ParseDuration(args[0])
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: invalid interval %q", ErrUsage, args[0])
		}
		interval = d
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := a.adapter.Session(ctx)
		if err != nil {
			return err
		}
		if status.Expired {
			fmt.Fprintln(a.out, app.MsgSessionExpired)
			return nil
		}
		if status.Session == nil {
			fmt.Fprintln(a.out, "no active session")
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (a *App) changePin(ctx context.Context, args []string) error {
	if err := a.adapter.ChangePin(ctx, models.ChangePinRequest{OldPIN: args[0], NewPIN: args[1]}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "PIN changed")
	return nil
}

func (a *App) resetPin(ctx context.Context, args []string) error {
	if err := a.adapter.ResetPin(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "PIN of %s reset\n", args[0])
	return nil
}

func (a *App) suspend(ctx context.Context, args []string) error {
	if err := a.adapter.Suspend(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s suspended\n", args[0])
	return nil
}

func (a *App) unsuspend(ctx context.Context, args []string) error {
	if err := a.adapter.Unsuspend(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s unsuspended\n", args[0])
	return nil
}

func (a *App) audit(ctx context.Context, args []string) error {
	limit := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: invalid limit %q", ErrUsage, args[0])
		}
		limit = n
	}

	entries, err := a.adapter.Audit(ctx, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AT\tACTION\tACTOR\tTARGET\tDETAIL")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.At.Format(time.RFC3339), e.Action, e.ActorID, e.TargetID, e.Detail)
	}
	return tw.Flush()
}

func (a *App) runPicker(ctx context.Context, _ []string) error {
	if a.picker == nil {
		return fmt.Errorf("%w: picker is not available", ErrUnknownCommand)
	}
	session, err := a.picker.Picker(ctx)
	if err != nil {
		return err
	}
	a.printSession(session)
	return nil
}

func (a *App) printSession(s models.AuthSession) {
	fmt.Fprintf(a.out, "session %s for profile %s on %s, expires %s\n",
		s.ID, s.ProfileID, s.DeviceID, s.ExpiresAt.Format(time.RFC3339))
}
