// Portnum runs distributed algorithms in the port-numbering model.
package main

import "github.com/sarchlab/portnum/cmd/portnum/cmd"

func main() {
	cmd.Execute()
}
