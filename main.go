package main

import "github.com/Rorical/gameconsole/cmd"

func main() {
	cmd.Execute()
}
