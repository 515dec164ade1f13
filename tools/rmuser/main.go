package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/model"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
)

var codec string

func main() {
	c := &coral.Command{
		Use:   "rmuser DATABASE EMAIL",
		Short: "Remove a user, their items and their tokens from the database",
		Args:  coral.ExactArgs(2),
		RunE: func(_ *coral.Command, args []string) error {
			option, err := database.StormCodec(codec)
			if err != nil {
				return err
			}

			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], option)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			return remove(os.Stdout, db, args[1])
		},
	}
	c.Flags().StringVar(&codec, "codec", "", "Storm codec of the database")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func remove(w io.Writer, db *storm.DB, email string) error {
	tx, err := db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not start transaction")
	}
	defer tx.Rollback()

	// Fetch user
	var user model.User
	err = tx.One("Email", strings.ToLower(strings.TrimSpace(email)), &user)
	if err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			fmt.Fprintln(w, "No account for this email")
			return nil
		}
		return errors.Wrap(err, "find user by mail")
	}

	fmt.Fprintln(w, "User found:", user.ID)

	// Deleting user's items
	err = tx.Select(q.Eq("UserID", user.ID)).Delete(&model.Item{})
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return errors.Wrap(err, "delete items")
	}
	fmt.Fprintln(w, "Items removed")

	// Deleting user's tokens
	err = tx.Select(q.Eq("UserID", user.ID)).Delete(&model.Token{})
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return errors.Wrap(err, "delete tokens")
	}
	fmt.Fprintln(w, "Tokens removed")

	// Delete user
	err = tx.DeleteStruct(&user)
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return errors.Wrap(err, "delete user")
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "could not commit")
	}
	fmt.Fprintln(w, "User removed")

	return nil
}
