package client

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/mdouchement/pantry/pkg/libpantry"
	"github.com/pkg/errors"
)

// WithClient loads the stored credentials and runs fn with an authenticated client.
func WithClient(fn func(client libpantry.Client) error) error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := cfg.Client()
	if err != nil {
		return err
	}

	return fn(client)
}

// WhoAmI prints the current user.
func WhoAmI(w io.Writer, client libpantry.Client) error {
	user, err := client.User()
	if err != nil {
		return errors.Wrap(err, "could not get user")
	}

	_, err = fmt.Fprintf(w, "%s (%s) since %s\n", user.Email, user.ID, user.CreatedAt.Local().Format(time.RFC1123))
	return err
}

// List prints all the items of the current user.
func List(w io.Writer, client libpantry.Client) error {
	items, err := client.Items()
	if err != nil {
		return errors.Wrap(err, "could not list items")
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tNOTES\tUPDATED")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.ID, item.Name, excerpt(item.Notes), item.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

// Add creates a new item and prints its ID.
func Add(w io.Writer, client libpantry.Client, name, notes string) error {
	item, err := client.CreateItem(name, notes)
	if err != nil {
		return errors.Wrap(err, "could not create item")
	}

	_, err = fmt.Fprintln(w, item.ID)
	return err
}

// Show prints the item for the given ID.
func Show(w io.Writer, client libpantry.Client, id string) error {
	item, err := client.Item(id)
	if err != nil {
		return errors.Wrapf(err, "could not get item %s", id)
	}

	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", item.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", item.Name)
	fmt.Fprintf(tw, "Created:\t%s\n", item.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(tw, "Updated:\t%s\n", item.UpdatedAt.Local().Format(time.DateTime))
	if err = tw.Flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "\n%s\n", item.Notes)
	return err
}

// Edit replaces the name and the notes of the item for the given ID.
// An empty value keeps the current one.
func Edit(client libpantry.Client, id, name, notes string) error {
	if name == "" || notes == "" {
		item, err := client.Item(id)
		if err != nil {
			return errors.Wrapf(err, "could not get item %s", id)
		}
		if name == "" {
			name = item.Name
		}
		if notes == "" {
			notes = item.Notes
		}
	}

	return errors.Wrapf(client.UpdateItem(id, name, notes), "could not update item %s", id)
}

// Delete deletes the items for the given IDs.
func Delete(client libpantry.Client, ids ...string) error {
	for _, id := range ids {
		if err := client.DeleteItem(id); err != nil {
			return errors.Wrapf(err, "could not delete item %s", id)
		}
	}
	return nil
}

func excerpt(s string) string {
	const limit = 40

	for i, r := range s {
		if r == '\n' {
			return s[:i] + "..."
		}
		if i >= limit {
			return s[:i] + "..."
		}
	}
	return s
}
