package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/nog-wm/nog/errs"
	"github.com/nog-wm/nog/state"
)

// requestTimeout is the read/write deadline for a normal request;
// reconnectTimeout doubles that window for the request retried right
// after a reconnect, since the freshly re-dialed connection may still
// be settling.
const (
	requestTimeout   = time.Second
	reconnectTimeout = 2 * time.Second
)

// Client is a framed IPC client for external front-ends (bar,
// notifications, nogctl) and this module's own tests.
type Client struct {
	mu   sync.Mutex
	addr string
	conn net.Conn
}

// Dial connects to addr with the standard 1s timeout.
func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, requestTimeout)
	if err != nil {
		return nil, errs.NewClientError(errs.IO, "dial", err)
	}
	return &Client{addr: addr, conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// ExecuteLua sends an ExecuteLua request and parses the "Ok:"/"Err:"
// response.
func (c *Client) ExecuteLua(code string, printType bool) (string, error) {
	resp, err := c.request(fmt.Sprintf("ExecuteLua:%t:%s", printType, code))
	if err != nil {
		return "", err
	}
	s := string(resp)
	switch {
	case strings.HasPrefix(s, "Ok:"):
		return strings.TrimPrefix(s, "Ok:"), nil
	case strings.HasPrefix(s, "Err:"):
		return "", errs.NewClientError(errs.LuaExecutionFailed, strings.TrimPrefix(s, "Err:"), nil)
	default:
		return "", errs.NewClientError(errs.InvalidResponse, s, nil)
	}
}

// GetBarContent requests and decodes the current bar content snapshot.
func (c *Client) GetBarContent() (state.BarContent, error) {
	resp, err := c.request("GetBarContent:")
	if err != nil {
		return state.BarContent{}, err
	}
	var bc state.BarContent
	if err := json.Unmarshal(resp, &bc); err != nil {
		return state.BarContent{}, errs.NewClientError(errs.InvalidResponse, string(resp), err)
	}
	return bc, nil
}

// GetState requests and decodes the current process-wide state snapshot.
func (c *Client) GetState() (state.Snapshot, error) {
	resp, err := c.request("GetState:")
	if err != nil {
		return state.Snapshot{}, err
	}
	var snap state.Snapshot
	if err := json.Unmarshal(resp, &snap); err != nil {
		return state.Snapshot{}, errs.NewClientError(errs.InvalidResponse, string(resp), err)
	}
	return snap, nil
}

// request performs one framed round trip, transparently reconnecting
// once (at the doubled reconnectTimeout) if the connection appears dead.
func (c *Client) request(body string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp, err := c.roundTrip(body, requestTimeout)
	if err == nil {
		return resp, nil
	}
	if rerr := c.reconnectLocked(reconnectTimeout); rerr != nil {
		return nil, errs.NewClientError(errs.IO, "reconnect", err)
	}
	resp, err = c.roundTrip(body, reconnectTimeout)
	if err != nil {
		return nil, errs.NewClientError(errs.IO, "request", err)
	}
	return resp, nil
}

func (c *Client) roundTrip(body string, timeout time.Duration) ([]byte, error) {
	if err := c.conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	if err := writeFrame(c.conn, []byte(body)); err != nil {
		return nil, err
	}
	if err := c.conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	return readFrame(c.conn)
}

func (c *Client) reconnectLocked(timeout time.Duration) error {
	if c.conn != nil {
		c.conn.Close()
	}
	conn, err := net.DialTimeout("tcp", c.addr, timeout)
	if err != nil {
		return err
	}
	c.conn = conn
	return nil
}
