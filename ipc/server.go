package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/nog-wm/nog/errs"
	"github.com/nog-wm/nog/state"
)

// Server runs an accept loop plus one read-loop goroutine per live
// connection. It enqueues an ExecuteLua action with a single-shot reply
// channel and never holds State's locks while waiting on a client.
type Server struct {
	state    *state.State
	listener net.Listener
}

// NewServer binds a Server to st. Call ListenAndServe to start accepting.
func NewServer(st *state.State) *Server {
	return &Server{state: st}
}

// Listen binds addr (e.g. "localhost:8080") and returns the bound
// address -- split from Serve so a caller can bind to port 0 and read
// back the OS-assigned port before the accept loop starts.
func (s *Server) Listen(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errs.NewPlatformError("ipc_listen", err)
	}
	s.listener = ln
	return ln.Addr().String(), nil
}

// Serve runs the accept loop until the listener is closed. Listen must
// be called first.
func (s *Server) Serve() error {
	if s.listener == nil {
		return fmt.Errorf("ipc: Listen must be called before Serve")
	}
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

// ListenAndServe binds addr and runs the accept loop until the listener
// is closed.
func (s *Server) ListenAndServe(addr string) error {
	if _, err := s.Listen(addr); err != nil {
		return err
	}
	return s.Serve()
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// handleConn runs one connection's read-loop: read a frame, dispatch it,
// write the response frame. A malformed request closes the connection.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	for {
		body, err := readFrame(conn)
		if err != nil {
			return
		}
		resp, ok := s.dispatch(string(body))
		if !ok {
			return
		}
		if err := writeFrame(conn, resp); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(body string) ([]byte, bool) {
	switch {
	case strings.HasPrefix(body, "ExecuteLua:"):
		return s.handleExecuteLua(strings.TrimPrefix(body, "ExecuteLua:"))
	case body == "GetBarContent:":
		return s.handleGetBarContent(), true
	case body == "GetState:":
		return s.handleGetState(), true
	default:
		return nil, false
	}
}

// handleExecuteLua parses "<print_type:bool>:<code>", enqueues an
// ExecuteLuaAction, and blocks on a single-shot reply channel for the
// reactor's result. A request that does not parse reports false, so
// the connection is closed without a reply.
func (s *Server) handleExecuteLua(rest string) ([]byte, bool) {
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		return nil, false
	}
	printType, err := strconv.ParseBool(parts[0])
	if err != nil {
		return nil, false
	}
	code := parts[1]

	type evalResult struct {
		out string
		err error
	}
	reply := make(chan evalResult, 1)
	s.state.Events.Send(state.ActionEvent{Action: state.ExecuteLuaAction{
		Code:          code,
		PrintType:     printType,
		CaptureStdout: true,
		Callback: func(out string, err error) {
			reply <- evalResult{out: out, err: err}
		},
	}})

	res := <-reply
	if res.err != nil {
		return []byte("Err:" + res.err.Error()), true
	}
	return []byte("Ok:" + res.out), true
}

func (s *Server) handleGetBarContent() []byte {
	b, err := json.Marshal(s.state.BarContent.Get())
	if err != nil {
		return []byte("Err:" + err.Error())
	}
	return b
}

func (s *Server) handleGetState() []byte {
	b, err := json.Marshal(s.state.Snapshot())
	if err != nil {
		return []byte("Err:" + err.Error())
	}
	return b
}
