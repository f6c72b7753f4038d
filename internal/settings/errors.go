package settings

import (
	"errors"
	"fmt"
)

// ErrDocumentNotSaved reports a host-relative export directory used before
// the host document has an on-disk location to resolve it against.
var ErrDocumentNotSaved = errors.New("host document is not saved")

// FirstRunError reports that the settings document, or the target node's
// section in it, does not exist yet. The caller is expected to write the
// scaffolding and ask the user to re-invoke; no export happens.
type FirstRunError struct {
	Node           string
	Filename       string // default output filename for the new section
	CreateDocument bool   // false: append a section to the existing document
}

func (e *FirstRunError) Error() string {
	if e.CreateDocument {
		return fmt.Sprintf("no settings document yet; a default one is needed for %q", e.Node)
	}
	return fmt.Sprintf("no settings section for %q yet", e.Node)
}

// NotExportableError reports an export attempt on a node whose section
// sets exportable = false.
type NotExportableError struct {
	Node string
}

func (e *NotExportableError) Error() string {
	return fmt.Sprintf("%q is marked not exportable in the settings document", e.Node)
}

// UnknownExporterError reports an exporter name outside the registry.
type UnknownExporterError struct {
	Node     string
	Exporter string
}

func (e *UnknownExporterError) Error() string {
	return fmt.Sprintf("unknown exporter %q for %q", e.Exporter, e.Node)
}

// DirectoryError reports a resolved export directory that does not exist.
type DirectoryError struct {
	Path string
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("export directory %q does not exist", e.Path)
}

// ParamError reports a settings value that failed type coercion or enum
// membership for one exporter parameter.
type ParamError struct {
	Key  string
	Want string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid value for setting %q, should be %s", e.Key, e.Want)
}
