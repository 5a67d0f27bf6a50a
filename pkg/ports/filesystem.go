package ports

// FileSystem abstracts the file operations the pipeline performs:
// reading model sidecars, writing archives and debug artifacts.
type FileSystem interface {
	// ReadFile returns the entire contents of the file at path.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it and any missing
	// parent directories. Existing files are replaced whole; readers
	// never observe a partially written file.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory along with any missing parents.
	// Existing directories are not an error.
	MkdirAll(path string) error

	// Exists reports whether a file or directory is present at path.
	Exists(path string) (bool, error)
}
