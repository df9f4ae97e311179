package main

import "github.com/AdguardTeam/dhcpnet/internal/cmd"

func main() {
	cmd.Main()
}
