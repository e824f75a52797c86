package main

import "github.com/gato25/odoo-rag/internal/cli"

func main() {
	cli.Execute()
}
