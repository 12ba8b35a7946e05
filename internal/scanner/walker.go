package scanner

import (
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// skipDirs are never descended into regardless of ignore rules
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"target":       true,
}

// ListFiles walks the repository and returns root-relative paths of all
// regular files, honoring .gitignore rules when the file is present.
func ListFiles(root string) []string {
	var ignore *gitignore.GitIgnore
	if matcher, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		ignore = matcher
	}

	var files []string
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		relative, relErr := filepath.Rel(root, path)
		if relErr != nil || relative == "." {
			return nil
		}
		relative = filepath.ToSlash(relative)

		if entry.IsDir() {
			if skipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			if ignore != nil && ignore.MatchesPath(relative+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if ignore != nil && ignore.MatchesPath(relative) {
			return nil
		}
		files = append(files, relative)
		return nil
	})
	return files
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func readFileIfExists(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(content)
}
