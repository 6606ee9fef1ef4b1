package nav

import (
	"log"
	"os"
)

// Permission names a capability the host platform may grant.
type Permission string

const (
	PermissionCamera       Permission = "camera"
	PermissionWriteStorage Permission = "write_storage"
)

// Grants records the outcome of a permission request.
type Grants map[Permission]bool

// CameraGranted reports whether the camera was explicitly granted.
func (g Grants) CameraGranted() bool {
	return g[PermissionCamera]
}

// StorageGranted reports whether exporting is allowed. Only some platforms
// ask for write access, so a missing entry counts as granted.
func (g Grants) StorageGranted() bool {
	v, ok := g[PermissionWriteStorage]
	return !ok || v
}

// ProbeGrants derives grants for the desktop: the camera follows the
// configuration switch and storage is granted when picturesDir is writable.
func ProbeGrants(picturesDir string, cameraEnabled bool) Grants {
	return Grants{
		PermissionCamera:       cameraEnabled,
		PermissionWriteStorage: writable(picturesDir),
	}
}

func writable(dir string) bool {
	if dir == "" {
		return false
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("pictures dir %s: %v", dir, err)
		return false
	}
	f, err := os.CreateTemp(dir, ".photocanvas-probe-*")
	if err != nil {
		log.Printf("pictures dir %s not writable: %v", dir, err)
		return false
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		log.Printf("close %s: %v", name, err)
	}
	if err := os.Remove(name); err != nil {
		log.Printf("remove %s: %v", name, err)
	}
	return true
}
