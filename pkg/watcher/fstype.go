package watcher

// FilesystemType is a best-effort classification of the filesystem backing a
// watched path. Remote filesystems deliver inotify events unreliably (or not
// at all), so the watcher falls back to polling on them.
type FilesystemType string

const (
	FSTypeUnknown FilesystemType = "unknown"
	FSTypeLocal   FilesystemType = "local"
	FSTypeNFS     FilesystemType = "nfs"
	FSTypeSMB     FilesystemType = "smb"
	FSTypeFUSE    FilesystemType = "fuse"
)

// isRemoteFilesystem reports whether inotify-style watching should not be
// trusted on the given filesystem type.
func isRemoteFilesystem(t FilesystemType) bool {
	switch t {
	case FSTypeNFS, FSTypeSMB, FSTypeFUSE:
		return true
	default:
		return false
	}
}
