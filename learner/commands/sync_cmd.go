package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/mirror"
	"github.com/lac-hong-legacy/lecture_api/playback"
	"github.com/spf13/cobra"
)

func newSyncCmd(opts *Options) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "sync [lectureId]",
		Short: "Re-send mirrored progress the server has not acknowledged",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openMirror()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if list {
				entries, err := store.All()
				if err != nil {
					return err
				}
				fmt.Fprint(out, renderMirror(entries))
				return nil
			}

			c, err := opts.newClient()
			if err != nil {
				return err
			}
			syncer := mirror.NewSyncer(store, c)
			ctx := context.Background()

			if len(args) == 1 {
				if syncer.Sync(ctx, args[0]) {
					fmt.Fprintln(out, styleGreen.Render("Synced "+args[0]))
				} else {
					fmt.Fprintln(out, styleYellow.Render("Could not sync "+args[0]+", it stays in the mirror"))
				}
				return nil
			}

			result := syncer.SyncPending(ctx)
			fmt.Fprintf(out, "%s %d synced, %d pending\n", styleHeader.Render("Sync"), result.Synced, result.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List mirror entries instead of syncing")
	return cmd
}

// newCompleteCmd marks a lecture done without playback, e.g. a rich text
// lecture the learner has read. It goes through the mirror like playback.
func newCompleteCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <lectureId>",
		Short: "Mark a lecture as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			store, err := opts.openMirror()
			if err != nil {
				return err
			}
			defer store.Close()

			lectureID := args[0]
			timeSpent := 0
			if current, err := c.GetLectureProgress(context.Background(), lectureID); err == nil {
				timeSpent = current.TimeSpent
			}

			var done *dto.CompleteLectureResponse
			rec := mirror.NewRecorder(store, c, lectureID, mirror.WithSendTimeout(opts.Timeout),
				mirror.OnComplete(func(resp *dto.CompleteLectureResponse) { done = resp }))
			rec.Record(playback.Update{Percent: 100, TimeSpent: timeSpent, Ended: true, At: time.Now()})

			out := cmd.OutOrStdout()
			if done == nil {
				fmt.Fprintln(out, styleYellow.Render("Saved locally; run `learner sync` when the server is reachable"))
				return nil
			}
			fmt.Fprintln(out, styleGreen.Render("Lecture completed"))
			printNext(cmd, done)
			return nil
		},
	}
}

func printNext(cmd *cobra.Command, done *dto.CompleteLectureResponse) {
	out := cmd.OutOrStdout()
	if done.NextLectureID != "" {
		fmt.Fprintf(out, "Next lecture unlocked: %s\n", done.NextLectureID)
	}
	if done.ChapterTestAvailable {
		fmt.Fprintln(out, styleGreen.Render("Chapter test available"))
	}
}
