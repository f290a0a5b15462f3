package ipc_test

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nog-wm/nog/config"
	"github.com/nog-wm/nog/ipc"
	"github.com/nog-wm/nog/state"
)

func startServer(t *testing.T, st *state.State) string {
	t.Helper()
	srv := ipc.NewServer(st)
	addr, err := srv.Listen("127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve()
	t.Cleanup(func() { srv.Close() })
	return addr
}

func TestExecuteLuaRoundTripViaEventQueue(t *testing.T) {
	st := state.New(config.Defaults())
	addr := startServer(t, st)

	// Drain the ExecuteLua action the server enqueues, as the reactor
	// would, and reply immediately.
	go func() {
		ev := st.Events.NextEvent()
		ae, ok := ev.(state.ActionEvent)
		require.True(t, ok)
		action, ok := ae.Action.(state.ExecuteLuaAction)
		require.True(t, ok)
		action.Callback("42", nil)
	}()

	client, err := ipc.Dial(addr)
	require.NoError(t, err)
	defer client.Close()

	out, err := client.ExecuteLua("6*7", true)
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}

func TestExecuteLuaErrorSurfacesAsClientError(t *testing.T) {
	st := state.New(config.Defaults())
	addr := startServer(t, st)

	go func() {
		ev := st.Events.NextEvent()
		ae := ev.(state.ActionEvent)
		action := ae.Action.(state.ExecuteLuaAction)
		action.Callback("", assert.AnError)
	}()

	client, err := ipc.Dial(addr)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.ExecuteLua("bad code", false)
	assert.Error(t, err)
}

func TestGetBarContentRoundTrips(t *testing.T) {
	st := state.New(config.Defaults())
	st.BarContent.Set(state.BarContent{Height: 20, FontName: "Consolas", FontSize: 14})
	addr := startServer(t, st)

	client, err := ipc.Dial(addr)
	require.NoError(t, err)
	defer client.Close()

	bc, err := client.GetBarContent()
	require.NoError(t, err)
	assert.Equal(t, uint(20), bc.Height)
	assert.Equal(t, "Consolas", bc.FontName)
}

func TestGetStateRoundTrips(t *testing.T) {
	st := state.New(config.Defaults())
	addr := startServer(t, st)

	client, err := ipc.Dial(addr)
	require.NoError(t, err)
	defer client.Close()

	snap, err := client.GetState()
	require.NoError(t, err)
	assert.Equal(t, "", snap.FocusedDisplayID)
}

func TestMalformedRequestClosesConnection(t *testing.T) {
	st := state.New(config.Defaults())
	addr := startServer(t, st)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	body := []byte("NotARealVerb:")
	lenPrefix := []byte{0, byte(len(body))}
	_, err = conn.Write(append(lenPrefix, body...))
	require.NoError(t, err)

	buf := make([]byte, 1)
	_, err = conn.Read(buf)
	assert.Error(t, err)
}

// TestExecuteLuaWireFrameSuppressesResultWhenPrintTypeFalse writes the
// exact length-prefixed "ExecuteLua:false:return 1+2" frame over a raw
// connection and checks the server replies "Ok:", the print_type=false
// wire form in which the result itself is suppressed.
func TestExecuteLuaWireFrameSuppressesResultWhenPrintTypeFalse(t *testing.T) {
	st := state.New(config.Defaults())
	addr := startServer(t, st)

	go func() {
		ev := st.Events.NextEvent()
		ae := ev.(state.ActionEvent)
		action := ae.Action.(state.ExecuteLuaAction)
		assert.Equal(t, "return 1+2", action.Code)
		assert.False(t, action.PrintType)
		action.Callback("", nil)
	}()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	body := []byte("ExecuteLua:false:return 1+2")
	lenPrefix := []byte{byte(len(body) >> 8), byte(len(body))}
	_, err = conn.Write(append(lenPrefix, body...))
	require.NoError(t, err)

	var respLen [2]byte
	_, err = io.ReadFull(conn, respLen[:])
	require.NoError(t, err)
	n := int(respLen[0])<<8 | int(respLen[1])
	resp := make([]byte, n)
	_, err = io.ReadFull(conn, resp)
	require.NoError(t, err)
	assert.Equal(t, "Ok:", string(resp))
}
