// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/halmod/halmod/cmd/halmod"

func main() {
	cmd.Execute()
}
