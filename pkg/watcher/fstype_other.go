//go:build !linux

package watcher

// DetectFilesystemType classifies the filesystem backing path. Only Linux
// has a statfs-based probe; elsewhere the watcher assumes fsnotify works.
func DetectFilesystemType(path string) FilesystemType {
	return FSTypeLocal
}
