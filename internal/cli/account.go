package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultpass/vaultpass-client/internal/crypto"
	"github.com/vaultpass/vaultpass-client/internal/model"
)

func (a *app) registerCommand() *cobra.Command {
	var (
		email, username string
		generate        bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a VaultPass account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = valueOrPrompt(a.prompt, email, "Email"); err != nil {
				return err
			}
			if username, err = valueOrPrompt(a.prompt, username, "Username"); err != nil {
				return err
			}

			var password string
			if generate {
				resp, err := a.gen.Generate(model.GenerateRequest{})
				if err != nil {
					return err
				}
				password = resp.Password
				fmt.Fprintf(a.out, "Generated master password: %s\nStore it somewhere safe, it is not shown again.\n", password)
			} else if password, err = a.promptNewPassword("Password"); err != nil {
				return err
			}

			sess, err := a.auth.Register(cmd.Context(), model.RegisterRequest{
				Email:    email,
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Account created, logged in as %s.\n", sess.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().BoolVar(&generate, "generate", false, "generate the master password")

	return cmd
}

func (a *app) loginCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email, password and emailed one-time code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = valueOrPrompt(a.prompt, email, "Email"); err != nil {
				return err
			}
			password, err := a.prompt.Secret("Password")
			if err != nil {
				return err
			}

			pending, err := a.auth.BeginLogin(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, "A 6-digit code was sent to your email.")
			code, err := a.prompt.Line("Code")
			if err != nil {
				return err
			}

			sess, err := a.auth.VerifyLogin(cmd.Context(), pending, email, code)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Logged in as %s.\n", sess.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")

	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func (a *app) changePasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "change-password",
		Short: "Change the account master password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}

			current, err := a.prompt.Secret("Current password")
			if err != nil {
				return err
			}
			next, err := a.prompt.Secret("New password")
			if err != nil {
				return err
			}
			confirm, err := a.prompt.Secret("Confirm new password")
			if err != nil {
				return err
			}

			if err := a.auth.ChangeMasterPassword(cmd.Context(), sess, current, next, confirm); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Password changed successfully.")
			return nil
		},
	}
}

// promptNewPassword asks for a password twice and shows its strength.
func (a *app) promptNewPassword(label string) (string, error) {
	password, err := a.prompt.Secret(label)
	if err != nil {
		return "", err
	}
	confirm, err := a.prompt.Secret("Confirm " + label)
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", fmt.Errorf("passwords don't match")
	}

	s := crypto.ScoreStrength(password)
	fmt.Fprintf(a.out, "Password strength: %s\n", s.Label)
	return password, nil
}
