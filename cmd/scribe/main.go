// Command scribe regenerates, backs up, and verifies a generated UI component.
package main

import "github.com/mesh-intelligence/scribe/internal/cli"

func main() {
	cli.Execute()
}
