package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to a running session.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status retrieves the session status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Switchyard.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Sources lists registered sources.
func (c *Client) Sources() (*SourcesResponse, error) {
	var resp SourcesResponse
	if err := c.client.Call("Switchyard.Sources", SourcesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Taps lists mix-bus connections.
func (c *Client) Taps() (*TapsResponse, error) {
	var resp TapsResponse
	if err := c.client.Call("Switchyard.Taps", TapsRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetLayout switches the layout mode.
func (c *Client) SetLayout(mode string) (*SetLayoutResponse, error) {
	var resp SetLayoutResponse
	if err := c.client.Call("Switchyard.SetLayout", SetLayoutRequest{Mode: mode}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetStage replaces the staged source ids.
func (c *Client) SetStage(ids []string) (*SetStageResponse, error) {
	var resp SetStageResponse
	if err := c.client.Call("Switchyard.SetStage", SetStageRequest{IDs: ids}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetMuted toggles a source's mute flag.
func (c *Client) SetMuted(id string, muted bool) (*AckResponse, error) {
	var resp AckResponse
	if err := c.client.Call("Switchyard.SetMuted", SetMutedRequest{ID: id, Muted: muted}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetBlur toggles a source's blur flag.
func (c *Client) SetBlur(id string, blur bool) (*AckResponse, error) {
	var resp AckResponse
	if err := c.client.Call("Switchyard.SetBlur", SetBlurRequest{ID: id, Blur: blur}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetGain adjusts the mix gain of a staged source's tap.
func (c *Client) SetGain(id string, gain float64) (*AckResponse, error) {
	var resp AckResponse
	if err := c.client.Call("Switchyard.SetGain", SetGainRequest{ID: id, Gain: gain}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OverlayGet retrieves the overlay settings snapshot.
func (c *Client) OverlayGet() (*OverlayGetResponse, error) {
	var resp OverlayGetResponse
	if err := c.client.Call("Switchyard.OverlayGet", OverlayGetRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OverlaySet replaces the overlay settings wholesale.
func (c *Client) OverlaySet(req OverlaySetRequest) (*AckResponse, error) {
	var resp AckResponse
	if err := c.client.Call("Switchyard.OverlaySet", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OverlayToggle flips one element's visibility.
func (c *Client) OverlayToggle(element string, show bool) (*AckResponse, error) {
	var resp AckResponse
	req := OverlayToggleRequest{Element: element, Show: show}
	if err := c.client.Call("Switchyard.OverlayToggle", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Snapshot writes the latest program frame to path on the server side.
func (c *Client) Snapshot(path string) (*SnapshotResponse, error) {
	var resp SnapshotResponse
	if err := c.client.Call("Switchyard.Snapshot", SnapshotRequest{Path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop asks the session process to shut down.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Switchyard.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
