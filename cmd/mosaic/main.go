// Command mosaic lexes and parses Mosaic source files.
package main

import "github.com/metaphox/mosaic-lang/internal/cmd"

func main() {
	cmd.Execute()
}
