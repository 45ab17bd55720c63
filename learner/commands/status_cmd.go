package commands

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, v interface{}) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}

func newChapterCmd(opts *Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "chapter <chapterId>",
		Short: "Show the lectures of a chapter and which one is unlocked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}

			ch, err := c.GetChapterLectures(context.Background(), args[0], opts.StudentID)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd, ch)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderChapter(ch))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw response")
	return cmd
}

func newOverviewCmd(opts *Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show progress across all subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.student()
			if err != nil {
				return err
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}

			overview, err := c.GetOverview(context.Background(), studentID)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd, overview)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderOverview(overview))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw response")
	return cmd
}

func newProfileCmd(opts *Options) *cobra.Command {
	var asJSON bool
	var displayName string

	cmd := &cobra.Command{
		Use:   "profile [userId]",
		Short: "Show a profile, or rename it with --name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := opts.StudentID
			if len(args) == 1 {
				userID = args[0]
			}
			if userID == "" {
				return fmt.Errorf("no user: pass a user id or --student")
			}

			c, err := opts.newClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			profile, err := c.GetProfile(ctx, userID)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				profile, err = c.UpdateProfile(ctx, userID, dto.UpdateProfileRequest{DisplayName: &displayName})
				if err != nil {
					return err
				}
			}

			if asJSON {
				return printJSON(cmd, profile)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderProfile(profile))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw response")
	cmd.Flags().StringVar(&displayName, "name", "", "New display name")
	return cmd
}
