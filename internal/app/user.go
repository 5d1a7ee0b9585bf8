package app

import (
	"github.com/spf13/cobra"

	"github.com/riteme/catmgr/internal/api"
)

func newAddUserCmd(s *session) *cobra.Command {
	var (
		creds       credentials
		newUserType string
		newUsername string
		newPassword string
	)

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Add a new user",
		Long: `Create an account. The new user's type, name and password are prompted
for when not given; the password prompt is masked and asks for confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := s.credentialParams(cmd, &creds)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if newUserType, err = resolve(newUserType, flags.Changed("new-user-type"), "",
				func() (string, error) { return s.prompt.Line("New user type") }, ""); err != nil {
				return err
			}
			if newUsername, err = resolve(newUsername, flags.Changed("new-username"), "",
				func() (string, error) { return s.prompt.Line("New username") }, ""); err != nil {
				return err
			}
			if newPassword, err = resolve(newPassword, flags.Changed("new-password"), "",
				func() (string, error) { return s.prompt.ConfirmedSecret("New password") }, ""); err != nil {
				return err
			}
			params["new_user_type"] = newUserType
			params["new_username"] = newUsername
			params["new_password"] = newPassword

			resp, err := s.client.Invoke(cmd.Context(), api.OpAddUser, params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var p api.UserIDPayload
			if f := resp.Payload(&p); f != nil {
				printFailure(out, f)
				return nil
			}
			succeed(out, "New user: \"%s\" #%d", newUsername, *p.UserID)
			return nil
		},
	}

	addCredentialFlags(cmd, &creds)
	cmd.Flags().StringVar(&newUserType, "new-user-type", "", "User type of the new user")
	cmd.Flags().StringVar(&newUsername, "new-username", "", "Username for the new user")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "Password for the new user")

	return cmd
}
