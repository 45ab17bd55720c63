package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lac-hong-legacy/lecture_api/services"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"github.com/spf13/cobra"
)

// newTokenCmd signs a token with the server secret. Local development only.
func newTokenCmd() *cobra.Command {
	var role, secret string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <userId>",
		Short: "Issue a development token signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("no secret: pass --secret or set JWT_SECRET")
			}
			switch role {
			case shared.RoleStudent, shared.RoleParent, shared.RoleAdmin:
			default:
				return fmt.Errorf("unknown role %q", role)
			}

			issued, err := services.NewJWTService(secret, ttl).GenerateToken(args[0], role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), issued.AccessToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", shared.RoleStudent, "student, parent or admin")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "Signing secret")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
