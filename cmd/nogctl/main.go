// Command nogctl is a thin IPC client for a running nogd. It never
// manipulates graphs directly -- every subcommand goes through
// ipc.Client.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nog-wm/nog/ipc"
)

func main() {
	addr := flag.String("ipc-addr", "127.0.0.1:17562", "address of a running nogd's IPC server")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	client, err := ipc.Dial(*addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nogctl: dial:", err)
		os.Exit(1)
	}
	defer client.Close()

	switch args[0] {
	case "exec":
		runExec(client, args[1:])
	case "bar-content":
		runBarContent(client)
	case "state":
		runState(client)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: nogctl [-ipc-addr addr] <exec|bar-content|state> [args]")
	fmt.Fprintln(os.Stderr, "  exec [-print] <lua code>   evaluate code in the running daemon")
	fmt.Fprintln(os.Stderr, "  bar-content                print the current bar-content snapshot as JSON")
	fmt.Fprintln(os.Stderr, "  state                      print the current window/workspace state as JSON")
}

func runExec(client *ipc.Client, args []string) {
	print := false
	if len(args) > 0 && args[0] == "-print" {
		print = true
		args = args[1:]
	}
	code := strings.Join(args, " ")
	if code == "" {
		fmt.Fprintln(os.Stderr, "nogctl: exec requires a code argument")
		os.Exit(2)
	}

	out, err := client.ExecuteLua(code, print)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nogctl: exec:", err)
		os.Exit(1)
	}
	if out != "" {
		fmt.Println(out)
	}
}

func runBarContent(client *ipc.Client) {
	bc, err := client.GetBarContent()
	if err != nil {
		fmt.Fprintln(os.Stderr, "nogctl: bar-content:", err)
		os.Exit(1)
	}
	printJSON(bc)
}

func runState(client *ipc.Client) {
	snap, err := client.GetState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "nogctl: state:", err)
		os.Exit(1)
	}
	printJSON(snap)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "nogctl: marshal response:", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}
