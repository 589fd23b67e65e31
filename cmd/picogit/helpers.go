package main

import (
	"os"

	"github.com/spf13/afero"

	"github.com/goabstract/picogit/repo"
)

// openRepo opens the repository rooted at the current working directory.
func openRepo() (*repo.Repository, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return repo.Open(afero.NewOsFs(), wd)
}
