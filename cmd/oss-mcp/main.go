package main

import "oss-mcp/cmd"

func main() {
	cmd.Execute()
}
