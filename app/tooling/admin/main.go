// This program provides offline inspection of a saved ledger snapshot.
package main

import "github.com/opmana/powledger/app/tooling/admin/commands"

func main() {
	commands.Execute()
}
