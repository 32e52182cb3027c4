package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/songtab/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string
}

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 5 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve the flattened tables over HTTP",
		Long: `Flatten a score document once and serve it read-only as JSON:

  GET /song              summary
  GET /notes             notes table rows
  GET /harmony           harmony table rows
  GET /sections          section names in document order
  GET /sections/{name}   one section's notes and harmony

Runs until interrupted (SIGINT/SIGTERM).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", rootOpts.Config.Addr, "listen address")

	return cmd
}

func runServe(opts *ServeOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := opts.Logger(cmd.ErrOrStderr())

	song, err := loadSong(opts.RootOptions, path, cmd)
	if err != nil {
		return formatter.Fail(err)
	}

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		_ = formatter.Error(ErrCodeServeFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeServeFailed, err)
	}

	srv := &http.Server{
		Handler:           server.New(song, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("serving", "addr", ln.Addr().String(), "song", song.Name())
	formatter.VerboseLog("Listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		_ = formatter.Error(ErrCodeServeFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeServeFailed, err)
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = formatter.Error(ErrCodeServeFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeServeFailed, err)
	}
	return nil
}
