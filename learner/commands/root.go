// Package commands is the learner command tree: chapter status, overview,
// simulated playback with progress reporting, mirror sync and profile.
package commands

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/lac-hong-legacy/lecture_api/client"
	"github.com/lac-hong-legacy/lecture_api/mirror"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Options are the settings shared by every subcommand. Flags fall back to
// LEARNER_* environment variables.
type Options struct {
	APIURL    string
	Token     string
	StudentID string
	MirrorDB  string
	Timeout   time.Duration
	Verbose   bool
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultMirrorPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "learner-mirror.db"
	}
	return filepath.Join(home, ".learner", "mirror.db")
}

func NewRootCmd() *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:           "learner",
		Short:         "Follow lectures and report progress to the lecture API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			if opts.Verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.APIURL, "api", envOr("LEARNER_API_URL", "http://localhost:8000"), "Lecture API base URL")
	flags.StringVar(&opts.Token, "token", os.Getenv("LEARNER_TOKEN"), "Bearer token")
	flags.StringVar(&opts.StudentID, "student", os.Getenv("LEARNER_STUDENT_ID"), "Student ID (defaults to the token owner where the API allows it)")
	flags.StringVar(&opts.MirrorDB, "mirror", envOr("LEARNER_MIRROR_DB", defaultMirrorPath()), "Local progress mirror database")
	flags.DurationVar(&opts.Timeout, "timeout", 10*time.Second, "Per request timeout")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log requests and sync failures")

	root.AddCommand(
		newChapterCmd(opts),
		newOverviewCmd(opts),
		newPlayCmd(opts),
		newCompleteCmd(opts),
		newSyncCmd(opts),
		newProfileCmd(opts),
		newTokenCmd(),
	)

	return root
}

func (o *Options) newClient() (*client.Client, error) {
	if o.Token == "" {
		return nil, errors.New("no token: pass --token or set LEARNER_TOKEN")
	}
	return client.New(o.APIURL, o.Token, client.WithTimeout(o.Timeout)), nil
}

func (o *Options) openMirror() (*mirror.Store, error) {
	if o.MirrorDB != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(o.MirrorDB), 0o755); err != nil {
			return nil, err
		}
	}
	return mirror.Open(o.MirrorDB)
}

func (o *Options) student() (string, error) {
	if o.StudentID == "" {
		return "", errors.New("no student: pass --student or set LEARNER_STUDENT_ID")
	}
	return o.StudentID, nil
}
