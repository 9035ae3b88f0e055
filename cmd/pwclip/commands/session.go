package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/systmms/pwclip/internal/app"
	"github.com/systmms/pwclip/internal/config"
	dserrors "github.com/systmms/pwclip/internal/errors"
	"github.com/systmms/pwclip/internal/metrics"
	"github.com/systmms/pwclip/internal/secure"
)

// exit is a test seam for os.Exit
var exit = os.Exit

const sessionHelp = `Commands:
  set [remember]     set the password, optionally remembering it
  copy [SECS|keep]   copy the password; SECS overrides the auto-clear delay,
                     keep disables auto-clear for this copy
  flush              clear a pending clipboard copy now
  status             show the current state
  forget             delete the saved password and clear memory
  clear-memory       drop the password from memory only
  metrics            print session counters
  help               show this help
  quit               clear a pending copy and exit
`

func NewSessionCommand(cfg *config.Config, open AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Keep the password in memory and copy it on demand",
		Long: `Start an interactive session. The password stays in memory between
commands and pending clipboard clears keep running in the background.
Leaving the session, or interrupting it, clears a pending copy first.

` + sessionHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			warnInsecure(a, cfg.Logger)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			finished := make(chan struct{})
			defer close(finished)
			go func() {
				select {
				case <-sigCh:
					a.Close()
					secure.Purge()
					exit(130)
				case <-finished:
				}
			}()

			s := &session{
				cfg:    cfg,
				app:    a,
				prompt: newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()),
				out:    cmd.OutOrStdout(),
			}
			return s.run()
		},
	}
}

type session struct {
	cfg    *config.Config
	app    *app.App
	prompt *prompter
	out    io.Writer
}

func (s *session) run() error {
	for {
		_, _ = fmt.Fprint(s.out, "pwclip> ")
		line, err := s.prompt.Line()
		if err != nil {
			if errors.Is(err, io.EOF) {
				_, _ = fmt.Fprintln(s.out)
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		quit, err := s.dispatch(fields[0], fields[1:])
		if err != nil {
			s.cfg.Logger.Error("%v", dserrors.SimplifyError(err))
		}
		if quit {
			return nil
		}
	}
}

func (s *session) dispatch(name string, args []string) (quit bool, err error) {
	switch name {
	case "set":
		return false, s.set(args)
	case "copy":
		return false, s.copy(args)
	case "flush":
		if !s.app.Clipboard().Flush() {
			s.cfg.Logger.Info("Nothing to clear")
		}
	case "status":
		s.status()
	case "forget":
		if err := s.app.Forget(); err != nil {
			return false, err
		}
		s.cfg.Logger.Info("Saved password removed")
	case "clear-memory":
		s.app.ClearMemory()
		s.cfg.Logger.Info("Password dropped from memory")
	case "metrics":
		return false, metrics.WriteText(s.out)
	case "help", "?":
		_, _ = fmt.Fprint(s.out, sessionHelp)
	case "quit", "exit":
		return true, nil
	default:
		return false, dserrors.UserError{
			Message:    fmt.Sprintf("Unknown command %q", name),
			Suggestion: "Type 'help' for a list of commands",
		}
	}
	return false, nil
}

func (s *session) set(args []string) error {
	remember := len(args) > 0 && args[0] == "remember"

	secret, err := s.prompt.Password("Password: ")
	if err != nil {
		return err
	}
	res, err := s.app.Set(secret, remember)
	if err != nil {
		return err
	}
	switch {
	case res.Persisted:
		s.cfg.Logger.Info("Password set and saved")
	case res.Forgot:
		s.cfg.Logger.Info("Password set; saved password removed")
	case res.Err == nil:
		s.cfg.Logger.Info("Password set")
	}
	return nil
}

func (s *session) copy(args []string) error {
	settings := s.app.Settings()
	autoClear := settings.AutoClear
	ttl := settings.TTL()

	if len(args) > 0 {
		if args[0] == "keep" {
			autoClear = false
		} else {
			secs, err := strconv.Atoi(args[0])
			if err != nil || secs < config.MinAutoClearSecs || secs > config.MaxAutoClearSecs {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Invalid delay %q", args[0]),
					Suggestion: fmt.Sprintf("Use a number of seconds between %d and %d, or 'keep'", config.MinAutoClearSecs, config.MaxAutoClearSecs),
				}
			}
			autoClear = true
			ttl = time.Duration(secs) * time.Second
		}
	}
	return s.app.CopyWith(autoClear, ttl)
}

func (s *session) status() {
	st := s.app.Status()
	password := "not set"
	if st.HasSecret {
		password = "set"
	}
	_, _ = fmt.Fprintf(s.out, "password: %s, remembered: %t, backend: %s (%s), clipboard: %s\n",
		password, st.Remembered, st.Backend, st.Security, st.Clipboard)
}
