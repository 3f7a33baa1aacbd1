package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func newLoginCmd(c *cli) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			p := newPrompter(cmd)
			username = p.ask("username", username)
			password = p.ask("password", password)

			if _, err := deps.Client.Auth.Login(cmd.Context(), username, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when empty)")
	return cmd
}

func newRegisterCmd(c *cli) *cobra.Command {
	var reg domain.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			p := newPrompter(cmd)
			reg.Username = p.ask("username", reg.Username)
			reg.Email = p.ask("email", reg.Email)
			reg.Password = p.ask("password", reg.Password)
			reg.Password2 = reg.Password

			user, err := deps.Client.Auth.Register(cmd.Context(), reg)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "account %s created, run `storefront login` to sign in\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&reg.Username, "username", "u", "", "Username")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Email")
	cmd.Flags().StringVarP(&reg.Password, "password", "p", "", "Password (prompted when empty)")
	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "Last name")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			if err := deps.Client.Auth.Logout(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newProfileCmd(c *cli) *cobra.Command {
	var email, firstName, lastName string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the current user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			if !deps.Credentials.LoggedIn() {
				return domain.ErrNotAuthenticated
			}

			var update domain.ProfileUpdate
			flags := cmd.Flags()
			if flags.Changed("email") {
				update.Email = &email
			}
			if flags.Changed("first-name") {
				update.FirstName = &firstName
			}
			if flags.Changed("last-name") {
				update.LastName = &lastName
			}

			var user domain.User
			if update == (domain.ProfileUpdate{}) {
				user, err = deps.Client.Auth.Profile(cmd.Context())
			} else {
				user, err = deps.Client.Auth.UpdateProfile(cmd.Context(), update)
			}
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "New first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "New last name")
	return cmd
}
