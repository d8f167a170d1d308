package main

import (
	"fmt"
	"os"

	"github.com/aureliengamet/minigit/internal/operations"
	"github.com/aureliengamet/minigit/internal/repository"
)

type cmdStatus struct{}

func (c *cmdStatus) Execute(_ []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	repo := repository.Open(wd)
	out, err := operations.Status(repo)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}
