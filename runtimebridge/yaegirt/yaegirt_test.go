package yaegirt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nog-wm/nog/graph"
	"github.com/nog-wm/nog/runtimebridge/yaegirt"
)

func TestEvalReturnsResultValue(t *testing.T) {
	rt, err := yaegirt.New()
	require.NoError(t, err)

	_, result, err := rt.Eval("1 + 2", false)
	require.NoError(t, err)
	assert.Equal(t, "3", result)
}

func TestEvalCapturesStdout(t *testing.T) {
	rt, err := yaegirt.New()
	require.NoError(t, err)

	stdout, _, err := rt.Eval(`import "fmt"; fmt.Print("hi")`, true)
	require.NoError(t, err)
	assert.Equal(t, "hi", stdout)
}

func TestEvalSyntaxErrorIsWrappedAsRuntimeError(t *testing.T) {
	rt, err := yaegirt.New()
	require.NoError(t, err)

	_, _, err = rt.Eval("this is not go", false)
	assert.Error(t, err)
}

func TestRegisterCallbackThenCallCallbackInvokesClosure(t *testing.T) {
	rt, err := yaegirt.New()
	require.NoError(t, err)

	called := false
	rt.RegisterCallback(1, func() { called = true })
	require.NoError(t, rt.CallCallback(1))
	assert.True(t, called)
}

func TestCallCallbackUnknownIDErrors(t *testing.T) {
	rt, err := yaegirt.New()
	require.NoError(t, err)

	assert.Error(t, rt.CallCallback(99))
}

func TestInvokeFiresScriptRegisteredHook(t *testing.T) {
	rt, err := yaegirt.New()
	require.NoError(t, err)

	_, _, err = rt.Eval(`
import "nog"

nog.RegisterHook(func(event string, win uint64) {
	println(event, win)
})
`, false)
	require.NoError(t, err)

	rt.Invoke("managed", graph.WindowID(42))
}
