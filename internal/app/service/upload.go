package service

import "io"

// FileUpload carries an inbound file stream and its client-supplied
// metadata. The blob store write happens before the referencing record is
// created, so a failed operation never leaves a dangling blob URL in the
// store.
type FileUpload struct {
	Reader      io.Reader
	Name        string
	ContentType string
}
