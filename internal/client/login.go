package client

import (
	"fmt"

	"github.com/chzyer/readline"
	"github.com/mdouchement/pantry/pkg/libpantry"
	"github.com/pkg/errors"
)

// Register creates a new account on a Pantry server.
func Register() error {
	cfg, password, err := prompt()
	if err != nil {
		return err
	}

	confirmation, err := readline.Password("Confirm password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}
	if string(confirmation) != password {
		return errors.New("passwords do not match")
	}

	client, err := cfg.Client()
	if err != nil {
		return err
	}

	id, err := client.Register(cfg.Email, password)
	if err != nil {
		return errors.Wrap(err, "could not register")
	}
	fmt.Println("Registered with ID", id)

	return nil
}

// Login connects to a Pantry server.
func Login() error {
	cfg, password, err := prompt()
	if err != nil {
		return err
	}

	client, err := cfg.Client()
	if err != nil {
		return err
	}

	if err = Authenticate(client, &cfg, password); err != nil {
		return err
	}

	return Save(cfg)
}

// Authenticate logs in the given client and keeps the issued token in the configuration.
func Authenticate(client libpantry.Client, cfg *Config, password string) error {
	if err := client.Login(cfg.Email, password); err != nil {
		return errors.Wrap(err, "could not login")
	}
	cfg.BearerToken = client.BearerToken()
	return nil
}

func prompt() (Config, string, error) {
	cfg := Config{}

	endpoint, err := readline.Line("Endpoint: ")
	if err != nil {
		return cfg, "", errors.Wrap(err, "could not read endpoint from stdin")
	}
	cfg.Endpoint = endpoint

	cfg.Email, err = readline.Line("Email: ")
	if err != nil {
		return cfg, "", errors.Wrap(err, "could not read email from stdin")
	}

	password, err := readline.Password("Password: ")
	if err != nil {
		return cfg, "", errors.Wrap(err, "could not read password from stdin")
	}

	return cfg, string(password), nil
}
