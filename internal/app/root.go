package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/riteme/catmgr/internal/api"
	"github.com/riteme/catmgr/internal/config"
	"github.com/riteme/catmgr/internal/util"
)

// session is the state shared by one command invocation. It is populated
// once in PersistentPreRunE and read-only afterwards.
type session struct {
	settings *config.Settings
	client   *api.Client
	prompt   *util.Prompter
	now      func() time.Time

	flagVerbose bool
	flagNoColor bool
	flagConfig  string
}

// Execute is the entry point called from main.
func Execute() {
	root := newRootCmd(&session{now: time.Now})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "catmgr",
		Short: "Command-line client for the catmgr library lending service",
		Long: `catmgr manages a library catalog and its borrow records through a
catmgrd server.

Settings are read from catmgr.json in the working directory:
  {"server_url": "http://localhost:10777/", "user": "3", "password": "..."}

Credentials not given as flags or settings are prompted for.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&s.flagVerbose, "verbose", "v", false, "Show more information")
	rootCmd.PersistentFlags().BoolVar(&s.flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&s.flagConfig, "config", "", "Settings file path (default: ./catmgr.json)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(s.flagNoColor)

		// version and completion work without settings.
		if cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}

		settings, err := config.Load(config.ResolvePath(s.flagConfig))
		if err != nil {
			return err
		}
		s.settings = settings
		s.client = api.New(settings.ServerURL, api.Options{
			Verbose:   s.flagVerbose,
			Diag:      cmd.OutOrStdout(),
			UserAgent: "catmgr/" + appVersion,
		})
		s.prompt = util.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newNewCmd(s),
		newUpdateCmd(s),
		newAddUserCmd(s),
		newShowCmd(s),
		newListCmd(s),
		newBorrowCmd(s),
		newExtendCmd(s),
		newReturnCmd(s),
		newConfigCmd(s),
		newVersionCmd(),
		newCompletionCmd(),
	)
	return rootCmd
}

// succeed prints a green confirmation line.
func succeed(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, color.GreenString(format, a...))
}

// printFailure reports an application-level failure: the status code and
// the server's reason, verbatim.
func printFailure(w io.Writer, f *api.Failure) {
	fmt.Fprintf(w, "%s %s\n", color.RedString("Status:"), f.Status)
	fmt.Fprintf(w, "%s %s\n", color.RedString("Reason:"), f.Reason)
}

// printCount ends a result listing.
func printCount(w io.Writer, n int) {
	fmt.Fprintf(w, "\n%d result(s)\n", n)
}
