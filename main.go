package main

import "github.com/dsrosen/zendesk-ticket-board/cmd"

func main() {
	cmd.Execute()
}
