package client

import (
	"github.com/pkg/errors"
)

// Logout disconnects from a Pantry server.
// All the tokens of the user are revoked, on every device.
func Logout() error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	if cfg.BearerToken == "" {
		return errors.New("could not logout because token is not defined")
	}

	client, err := cfg.Client()
	if err != nil {
		return err
	}

	if err = client.Logout(); err != nil {
		return errors.Wrap(err, "could not logout")
	}

	return errors.Wrap(Remove(), "could not remove credential file")
}
