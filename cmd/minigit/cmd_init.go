package main

import (
	"os"

	"github.com/aureliengamet/minigit/internal/operations"
)

type cmdInit struct {
	Args struct {
		Path string `positional-arg-name:"path" required:"false"`
	} `positional-args:"yes"`
}

func (c *cmdInit) Execute(_ []string) error {
	path := c.Args.Path
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		path = wd
	}
	return operations.Init(path)
}
