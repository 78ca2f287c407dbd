package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vaultpass/vaultpass-client/internal/crypto"
	"github.com/vaultpass/vaultpass-client/internal/model"
	"github.com/vaultpass/vaultpass-client/internal/service"
)

const maskedPassword = "••••••••"

func (a *app) listCommand() *cobra.Command {
	var (
		filter service.Filter
		show   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored passwords",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}

			entries, err := a.vault.List(cmd.Context(), sess, filter)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.out, "No passwords found.")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tUSERNAME\tCATEGORY\tURL\tPASSWORD")
			for _, e := range entries {
				password := maskedPassword
				if show {
					password = e.Password
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Title, e.Username, e.Category, e.URL, password)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&filter.Category, "category", "", "only show one category (Login, Social, Banking, Other)")
	cmd.Flags().StringVarP(&filter.Query, "search", "s", "", "search title, username and URL")
	cmd.Flags().BoolVar(&show, "show", false, "reveal passwords")

	return cmd
}

// entryFlags are the editable fields shared by add and edit.
type entryFlags struct {
	title, username, url, category, notes string
	generate                              bool
	length                                int
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "entry title")
	cmd.Flags().StringVar(&f.username, "username", "", "account username")
	cmd.Flags().StringVar(&f.url, "url", "", "site URL")
	cmd.Flags().StringVar(&f.category, "category", "", "category (Login, Social, Banking, Other)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVar(&f.generate, "generate", false, "generate the password")
	cmd.Flags().IntVar(&f.length, "length", crypto.DefaultLength, "generated password length (at most 128)")
}

func (a *app) generatedPassword(length int) (string, error) {
	resp, err := a.gen.Generate(model.GenerateRequest{Length: length})
	if err != nil {
		return "", err
	}
	fmt.Fprintf(a.out, "Generated password: %s\n", resp.Password)
	return resp.Password, nil
}

func (a *app) addCommand() *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a new password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}

			entry := model.PasswordEntry{
				Username: f.username,
				URL:      f.url,
				Category: f.category,
				Notes:    f.notes,
			}
			if entry.Title, err = valueOrPrompt(a.prompt, f.title, "Title"); err != nil {
				return err
			}

			if f.generate {
				entry.Password, err = a.generatedPassword(f.length)
			} else {
				entry.Password, err = a.prompt.Secret("Password")
			}
			if err != nil {
				return err
			}

			created, err := a.vault.Create(cmd.Context(), sess, entry)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Password created successfully (id %s).\n", created.ID)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func (a *app) editCommand() *cobra.Command {
	var (
		f           entryFlags
		newPassword bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a stored password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}

			entry, err := a.vault.Get(cmd.Context(), sess, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				entry.Title = f.title
			}
			if flags.Changed("username") {
				entry.Username = f.username
			}
			if flags.Changed("url") {
				entry.URL = f.url
			}
			if flags.Changed("category") {
				entry.Category = f.category
			}
			if flags.Changed("notes") {
				entry.Notes = f.notes
			}

			switch {
			case f.generate:
				entry.Password, err = a.generatedPassword(f.length)
			case newPassword:
				entry.Password, err = a.prompt.Secret("New password")
			}
			if err != nil {
				return err
			}

			if _, err := a.vault.Update(cmd.Context(), sess, args[0], entry); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Password updated successfully.")
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&newPassword, "password", false, "prompt for a new password")

	return cmd
}

func (a *app) deleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored password",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}

			if !yes {
				answer, err := a.prompt.Line(fmt.Sprintf("Delete %s? [y/N]", args[0]))
				if err != nil {
					return err
				}
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					fmt.Fprintln(a.out, "Aborted.")
					return nil
				}
			}

			if err := a.vault.Delete(cmd.Context(), sess, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Password deleted successfully.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (a *app) copyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a stored password to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}

			entry, err := a.vault.Get(cmd.Context(), sess, args[0])
			if err != nil {
				return err
			}
			if err := a.clip(entry.Password); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			fmt.Fprintf(a.out, "Copied password for %q to clipboard.\n", entry.Title)
			return nil
		},
	}
}
