package ginternals

import (
	"path"
	"path/filepath"

	"github.com/goabstract/picogit/ginternals/config"
)

const refsHeadsRelPath = "refs/heads"

// LocalBranchFullName returns the full name of a branch.
// Ex. "main" -> "refs/heads/main"
func LocalBranchFullName(shortName string) string {
	return path.Join(refsHeadsRelPath, shortName)
}

// RefsPath returns the path to the directory holding all the refs.
func RefsPath(cfg *config.Config) string {
	return filepath.Join(cfg.GitDirPath, "refs")
}

// LocalBranchesPath returns the path to the directory holding local branches.
func LocalBranchesPath(cfg *config.Config) string {
	return filepath.Join(RefsPath(cfg), "heads")
}

// DotGitPath returns the path to the .git directory.
func DotGitPath(cfg *config.Config) string {
	return cfg.GitDirPath
}

// ObjectsPath returns the path to the directory holding loose objects.
func ObjectsPath(cfg *config.Config) string {
	return cfg.ObjectDirPath
}

// DescriptionFilePath returns the path to the repository description file.
func DescriptionFilePath(cfg *config.Config) string {
	return filepath.Join(DotGitPath(cfg), "description")
}

// LooseObjectPath returns the path of a loose object.
// Path is .git/objects/{first_2_chars_of_oid}/{remaining_chars_of_oid}
func LooseObjectPath(cfg *config.Config, hexOid string) string {
	return filepath.Join(ObjectsPath(cfg), hexOid[:2], hexOid[2:])
}
