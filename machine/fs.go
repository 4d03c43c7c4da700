package machine

import (
	"io"
	"io/fs"
)

// CreateFS is the writable file system surface a snapshot is written to.
type CreateFS interface {
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
}

// Snapshot writes every mapped region's image to filesys as <name>.bin.
func (mach *Machine) Snapshot(filesys CreateFS) (err error) {
	for region := range mach.Space.Regions() {
		var file io.WriteCloser
		file, err = filesys.Create(region.Name + ".bin")
		if err != nil {
			return
		}

		err = region.Marshal(file)
		if err != nil {
			file.Close()
			return
		}

		err = file.Close()
		if err != nil {
			return
		}
	}

	return
}

// Restore loads region images written by Snapshot. Names and sizes must
// match the machine's own plan; a snapshot never remaps anything.
func (mach *Machine) Restore(filesys fs.FS) (err error) {
	for region := range mach.Space.Regions() {
		var file fs.File
		file, err = filesys.Open(region.Name + ".bin")
		if err != nil {
			return
		}

		err = region.Unmarshal(file)
		file.Close()
		if err != nil {
			return
		}
	}

	return
}
