package domain

import "errors"

var (
	ErrEmptyClientName  = errors.New("client name must not be empty")
	ErrEmptyClientEmail = errors.New("client email must not be empty")
)

// Client is a buyer. Address is optional.
type Client struct {
	ID      int64
	Name    string
	Email   string
	Address *string
}

// NewClient validates and constructs a Client.
func NewClient(name, email string, address *string) (*Client, error) {
	client := &Client{Name: name, Email: email, Address: address}
	if err := client.Validate(); err != nil {
		return nil, err
	}
	return client, nil
}

// Validate enforces invariants on the client.
func (c *Client) Validate() error {
	if c.Name == "" {
		return ErrEmptyClientName
	}
	if c.Email == "" {
		return ErrEmptyClientEmail
	}
	return nil
}
