package main

import (
	"fmt"
	"os"

	"github.com/aureliengamet/minigit/internal/operations"
	"github.com/aureliengamet/minigit/internal/repository"
)

type cmdCommit struct{}

func (c *cmdCommit) Execute(_ []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	repo := repository.Open(wd)
	out, err := operations.Commit(repo, os.Stdin)
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}
