// Command uptake simulates JavaScript framework adoption and serves the
// results as a dashboard, terminal UI or MCP server.
package main

import "github.com/papapumpkin/uptake/cmd"

func main() {
	cmd.Execute()
}
