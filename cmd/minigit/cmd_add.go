package main

import (
	"os"

	"github.com/pkg/errors"

	"github.com/aureliengamet/minigit/internal/operations"
	"github.com/aureliengamet/minigit/internal/repository"
)

type cmdAdd struct {
	Args struct {
		Pathspecs []string `positional-arg-name:"pathspec" required:"1"`
	} `positional-args:"yes"`
}

func (c *cmdAdd) Execute(_ []string) error {
	if len(c.Args.Pathspecs) == 0 {
		return errors.New("usage: minigit add <pathspec>...")
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	repo := repository.Open(wd)
	return operations.Add(repo, c.Args.Pathspecs)
}
