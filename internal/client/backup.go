package client

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mdouchement/pantry/pkg/libpantry"
	"github.com/pkg/errors"
)

// A Dump is the content of a backup file.
type Dump struct {
	User  *libpantry.User   `json:"user"`
	Items []*libpantry.Item `json:"items"`
}

// Backup fetchs all the items and store it in the current directory.
func Backup() error {
	return WithClient(func(client libpantry.Client) error {
		filename := fmt.Sprintf("items_%s.json", time.Now().Format("20060102150405"))
		if err := BackupTo(client, filename); err != nil {
			return err
		}

		fmt.Println("Items stored in", filename)
		return nil
	})
}

// BackupTo fetchs the current user and all their items and store them in the given file.
func BackupTo(client libpantry.Client, filename string) error {
	var (
		dump Dump
		err  error
	)

	dump.User, err = client.User()
	if err != nil {
		return errors.Wrap(err, "could not get user")
	}

	dump.Items, err = client.Items()
	if err != nil {
		return errors.Wrap(err, "could not get items")
	}

	return errors.Wrap(backup(dump, filename), "items")
}

func backup(v any, filename string) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not serialize value to backup")
	}

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Wrap(err, "could not create backup file")
	}
	defer f.Close()

	_, err = f.Write(payload)
	if err != nil {
		return errors.Wrap(err, "could not write backuped values")
	}

	return errors.Wrap(f.Sync(), "could not backup")
}
