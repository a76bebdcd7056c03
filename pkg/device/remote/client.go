package remote

import (
	"net/rpc"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/device"
)

// New dials a panel proxy.
func New(addr string) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

var _ device.Panel = (*Client)(nil)

func (c *Client) Init() error {
	return c.rpc.Call("Service.Command", "init", nil)
}

func (c *Client) Sleep() error {
	return c.rpc.Call("Service.Command", "sleep", nil)
}

// Halt halts the remote panel and drops the connection.
func (c *Client) Halt() error {
	err := c.rpc.Call("Service.Command", "halt", nil)
	if err2 := c.rpc.Close(); err == nil {
		err = err2
	}
	return err
}

func (c *Client) Show(cv *canvas.Canvas) error {
	black, chromatic := cv.Planes()
	return c.rpc.Call("Service.Show", &ShowRequest{
		Width:     cv.Bounds().Dx(),
		Height:    cv.Bounds().Dy(),
		Black:     black,
		Chromatic: chromatic,
	}, nil)
}
