package main

import "github.com/MeKo-Tech/receiptly/cmd/receiptly/cmd"

func main() {
	cmd.Execute()
}
