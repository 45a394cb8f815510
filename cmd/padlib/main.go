// Command padlib manages the gap-pad product library.
package main

import "github.com/mesh-intelligence/padlib/internal/cli"

func main() {
	cli.Execute()
}
