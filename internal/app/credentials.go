package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/riteme/catmgr/internal/api"
)

// credentials holds the -u/-p flags of a command that needs an account.
type credentials struct {
	user     string
	password string
}

func addCredentialFlags(cmd *cobra.Command, c *credentials) {
	cmd.Flags().StringVarP(&c.user, "user", "u", "", `Account username (default: "user" in settings, else prompted)`)
	cmd.Flags().StringVarP(&c.password, "password", "p", "", `Account password (default: "password" in settings, else prompted)`)
}

// resolve picks one value by a fixed precedence:
//
//	explicit flag > loaded setting > interactive prompt > built-in default
//
// ask may be nil when the value is never prompted for.
func resolve(explicit string, isSet bool, setting string, ask func() (string, error), fallback string) (string, error) {
	if isSet {
		return explicit, nil
	}
	if setting != "" {
		return setting, nil
	}
	if ask != nil {
		return ask()
	}
	return fallback, nil
}

// credentialParams resolves the account for cmd and returns the credential part of a
// request.
func (s *session) credentialParams(cmd *cobra.Command, c *credentials) (api.Params, error) {
	flags := cmd.Flags()
	user, err := resolve(c.user, flags.Changed("user"), s.settings.User,
		func() (string, error) { return s.prompt.Line("User") }, "")
	if err != nil {
		return nil, err
	}
	password, err := resolve(c.password, flags.Changed("password"), s.settings.Password,
		func() (string, error) { return s.prompt.Secret("Password") }, "")
	if err != nil {
		return nil, err
	}
	return api.Params{"user": user, "password": password}, nil
}

// parseID converts a positional id argument.
func parseID(name, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, arg)
	}
	return id, nil
}

// oneOf validates a choice flag.
func oneOf(flag, value string, choices []string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return fmt.Errorf("invalid value %q for --%s: choose from %v", value, flag, choices)
}

// descAlias lets --desc stand in for --description.
func descAlias(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "desc" {
		name = "description"
	}
	return pflag.NormalizedName(name)
}
