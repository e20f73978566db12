package main

import (
	"fmt"

	"creditdesk/internal/auth"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a session token",
		Long:  `Store the bearer token issued by the identity service. The token occupies a single slot: logging in again overwrites the previous session.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, _ := cmd.Flags().GetString("token")
			if token == "" {
				return fmt.Errorf("--token is required")
			}

			identity, err := auth.DecodeToken(token)
			if err != nil {
				return fmt.Errorf("token is not a decodable credential: %w", err)
			}

			store, err := openTokenStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Save(token); err != nil {
				return err
			}

			name := identity.Name
			if name == "" {
				name = identity.ID
			}
			fmt.Printf("Logged in as %s (%s)\n", name, identity.Role)
			return nil
		},
	}

	cmd.Flags().String("token", "", "bearer token from the identity service")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openTokenStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session's identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			adapter, closeStore, err := openAdapter(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			identity := adapter.Identity()
			fmt.Printf("id:   %s\nrole: %s\n", identity.ID, identity.Role)
			if identity.Name != "" {
				fmt.Printf("name: %s\n", identity.Name)
			}
			return nil
		},
	}
}
