package libpantry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a Pantry server.
	Client interface {
		// Version returns the version of the Pantry server.
		Version() (string, error)
		// Register creates a new account and returns its ID.
		Register(email, password string) (string, error)
		// Login connects the Client to the Pantry server.
		// The issued token is used as bearer token for the following requests.
		Login(email, password string) error
		// Logout revokes all the tokens of the current user, on every device.
		Logout() error
		// BearerToken returns the authentication used for requests sent to the Pantry server.
		BearerToken() string
		// SetBearerToken sets the authentication used for requests sent to the Pantry server.
		SetBearerToken(token string)
		// User returns the current user.
		User() (*User, error)
		// Items returns all the items of the current user.
		Items() ([]*Item, error)
		// CreateItem creates a new item.
		CreateItem(name, notes string) (*Item, error)
		// Item returns the item for the given id.
		Item(id string) (*Item, error)
		// UpdateItem replaces the name and the notes of the item for the given id.
		UpdateItem(id, name, notes string) error
		// DeleteItem deletes the item for the given id.
		DeleteItem(id string) error
	}

	p      map[string]any
	client struct {
		http     *http.Client
		endpoint string
		bearer   string
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) Version() (string, error) {
	var version struct {
		Version string `json:"version"`
	}
	err := c.perform(http.MethodGet, "/version", nil, http.StatusOK, &version)
	return version.Version, err
}

func (c *client) Register(email, password string) (string, error) {
	var user struct {
		ID string `json:"id"`
	}
	err := c.perform(http.MethodPost, "/register", p{"email": email, "password": password}, http.StatusCreated, &user)
	return user.ID, err
}

func (c *client) Login(email, password string) error {
	var login struct {
		Token string `json:"token"`
	}
	if err := c.perform(http.MethodPost, "/login", p{"email": email, "password": password}, http.StatusOK, &login); err != nil {
		return err
	}

	c.bearer = login.Token
	return nil
}

func (c *client) Logout() error {
	if c.bearer == "" {
		return errors.New("no token defined")
	}

	return c.perform(http.MethodPost, "/logout", nil, http.StatusNoContent, nil)
}

func (c *client) BearerToken() string {
	return c.bearer
}

func (c *client) SetBearerToken(token string) {
	c.bearer = token
}

func (c *client) User() (*User, error) {
	var user User
	err := c.perform(http.MethodGet, "/user", nil, http.StatusOK, &user)
	return &user, err
}

func (c *client) Items() ([]*Item, error) {
	items := make([]*Item, 0)
	err := c.perform(http.MethodGet, "/items", nil, http.StatusOK, &items)
	return items, err
}

func (c *client) CreateItem(name, notes string) (*Item, error) {
	var item Item
	err := c.perform(http.MethodPost, "/items", p{"name": name, "notes": notes}, http.StatusCreated, &item)
	return &item, err
}

func (c *client) Item(id string) (*Item, error) {
	var item Item
	err := c.perform(http.MethodGet, path.Join("/items", id), nil, http.StatusOK, &item)
	return &item, err
}

func (c *client) UpdateItem(id, name, notes string) error {
	return c.perform(http.MethodPut, path.Join("/items", id), p{"name": name, "notes": notes}, http.StatusNoContent, nil)
}

func (c *client) DeleteItem(id string) error {
	return c.perform(http.MethodDelete, path.Join("/items", id), nil, http.StatusNoContent, nil)
}

// perform sends a JSON request and decodes the response into v when v is not nil.
func (c *client) perform(method, route string, params p, expected int, v any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, route)

	//
	// Build request
	var body io.Reader
	if params != nil {
		payload, err := json.Marshal(params)
		if err != nil {
			return errors.Wrap(err, "could not serialize params")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	if c.bearer != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.bearer))
	}

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseAPIError(res.Body, res.StatusCode)
	}
	if res.StatusCode != expected {
		return errors.Errorf("unexpected status code %d", res.StatusCode)
	}

	//
	// Process response
	if v == nil {
		return nil
	}
	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}
