package main

import (
	"fmt"
	"os"

	"github.com/mdouchement/pantry/internal/client"
	"github.com/mdouchement/pantry/pkg/libpantry"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	name  string
	notes string
)

func main() {
	c := &cobra.Command{
		Use:     "pantryc",
		Short:   "Pantry client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.AddCommand(registerCmd)
	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(whoamiCmd)
	c.AddCommand(listCmd)

	addCmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes of the item")
	addCmd.MarkFlagRequired("notes")
	c.AddCommand(addCmd)

	c.AddCommand(showCmd)

	editCmd.Flags().StringVarP(&name, "name", "N", "", "New name of the item")
	editCmd.Flags().StringVarP(&notes, "notes", "n", "", "New notes of the item")
	c.AddCommand(editCmd)

	c.AddCommand(rmCmd)
	c.AddCommand(backupCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Create an account on a Pantry server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Register()
		},
	}

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login to the Pantry server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Login()
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Logout from the Pantry server on every device",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Logout()
		},
	}

	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Display the current user",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.WithClient(func(c libpantry.Client) error {
				return client.WhoAmI(os.Stdout, c)
			})
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List your items",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.WithClient(func(c libpantry.Client) error {
				return client.List(os.Stdout, c)
			})
		},
	}

	addCmd = &cobra.Command{
		Use:   "add NAME",
		Short: "Add an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.WithClient(func(c libpantry.Client) error {
				return client.Add(os.Stdout, c, args[0], notes)
			})
		},
	}

	showCmd = &cobra.Command{
		Use:   "show ID",
		Short: "Display an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.WithClient(func(c libpantry.Client) error {
				return client.Show(os.Stdout, c, args[0])
			})
		},
	}

	editCmd = &cobra.Command{
		Use:   "edit ID",
		Short: "Edit an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.WithClient(func(c libpantry.Client) error {
				return client.Edit(c, args[0], name, notes)
			})
		},
	}

	rmCmd = &cobra.Command{
		Use:   "rm ID...",
		Short: "Delete items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.WithClient(func(c libpantry.Client) error {
				return client.Delete(c, args...)
			})
		},
	}

	backupCmd = &cobra.Command{
		Use:   "backup",
		Short: "Backup your items",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Backup()
		},
	}
)
