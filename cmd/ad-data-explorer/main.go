package main

import (
	"context"

	"github.com/muneeb706/ad-data-explorer/cmd"
)

func main() {
	cmd.Execute(context.Background())
}
