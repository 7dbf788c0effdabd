package clients

import "errors"

var ClientNotFoundErr = errors.New("client not found")

type Repo interface {
	Get(clientID string) (*Client, error)
	Upsert(client *Client) error
}
