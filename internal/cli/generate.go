package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultpass/vaultpass-client/internal/crypto"
	"github.com/vaultpass/vaultpass-client/internal/model"
)

func (a *app) generateCommand() *cobra.Command {
	var (
		length                      int
		uppercase, numbers, symbols bool
		copyOut, save, quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a secure random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.gen.Generate(model.GenerateRequest{
				Length:    length,
				Uppercase: &uppercase,
				Numbers:   &numbers,
				Symbols:   &symbols,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, resp.Password)
			if !quiet {
				fmt.Fprintf(a.out, "Length:   %d characters\n", resp.Length)
				fmt.Fprintf(a.out, "Strength: %s (%d/%d)\n", resp.Strength.Label, resp.Strength.Score, crypto.MaxStrengthScore)
				fmt.Fprintf(a.out, "Entropy:  %.1f bits\n", resp.EntropyBits)
			}

			if copyOut {
				if err := a.clip(resp.Password); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				if !quiet {
					fmt.Fprintln(a.out, "Copied to clipboard.")
				}
			}

			if save {
				sess, err := a.session()
				if err != nil {
					return err
				}
				entry, err := a.vault.SaveGenerated(cmd.Context(), sess, resp.Password)
				if err != nil {
					return err
				}
				if !quiet {
					fmt.Fprintf(a.out, "Saved as %q (id %s).\n", entry.Title, entry.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", crypto.DefaultLength, "password length (at most 128)")
	cmd.Flags().BoolVar(&uppercase, "uppercase", true, "include uppercase letters")
	cmd.Flags().BoolVar(&numbers, "numbers", true, "include digits")
	cmd.Flags().BoolVar(&symbols, "symbols", true, "include symbols")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "copy the password to the clipboard")
	cmd.Flags().BoolVar(&save, "save", false, "store the password in the vault")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the password")

	return cmd
}

func (a *app) strengthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strength [password]",
		Short: "Rate the strength of a password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				var err error
				if password, err = a.prompt.Secret("Password"); err != nil {
					return err
				}
			}

			s := crypto.ScoreStrength(password)
			fmt.Fprintf(a.out, "Password strength: %s (%d/%d)\n", s.Label, s.Score, crypto.MaxStrengthScore)
			return nil
		},
	}
}
