package operations

import "github.com/aureliengamet/minigit/internal/repository"

// Init creates the ".git" layout at path, recursively and idempotently.
func Init(path string) error {
	return repository.Init(path)
}
