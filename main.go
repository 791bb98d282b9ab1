package main

import "github.com/josephgoksu/RepoWing/cmd"

func main() {
	cmd.Execute()
}
