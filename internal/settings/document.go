package settings

import "fmt"

// DocumentName is the name the settings document is stored under in the
// host.
const DocumentName = "QuickExportConfig"

const documentHeader = `# Settings for quick export.
#
# Each [section] header below holds the configuration for one scene node.
# The [DEFAULT] section is special; it provides defaults for any options
# not specified in another section.
#
# The supported options are:
#   exporter         - Which format to export with. Can be changed per node
#                      but usually goes in [DEFAULT]. Currently the only
#                      supported exporter is 'fbx'.
#   directory        - Where files are exported to. Usually goes in the
#                      [DEFAULT] section. Start the path with // for a path
#                      relative to the host document. Example:
#                        directory = //../Assets/Models
#                      If unspecified, the default is // .
#   filename         - The output filename. If no extension is given, the
#                      exporter's extension (eg. '.fbx') is appended. If
#                      unspecified, the node's name is used.
#   exportable       - If set to false, the node cannot be exported, and it
#                      is left out when exporting an ancestor node. If
#                      unspecified, defaults to true.
#   join_meshes      - If set to true, all meshes in this node are merged
#                      into one during export. It also applies when the node
#                      is exported as part of an ancestor's export.
#   joined_mesh_name - When join_meshes is true, the name of the combined
#                      mesh in the export. If unspecified, the node's name
#                      is used.
#   use_visible      - If true, only export visible leaves. Unlike
#                      join_meshes, this applies to the whole export, not
#                      just the node it is specified on. Defaults to false.
# Additionally, any option supported by the exporter can be specified,
# for example 'object_types', 'use_triangles' or 'embed_textures' for fbx.

[DEFAULT]
exporter = fbx
directory = //
`

// DefaultDocument builds a brand-new settings document with a commented
// header, the DEFAULT section and one section for the given node.
func DefaultDocument(node, filename string) string {
	return documentHeader + fmt.Sprintf("\n[%s]\nfilename = %s\n", node, filename)
}

// AppendSection returns the document with a section for the node appended.
func AppendSection(doc, node, filename string) string {
	if len(doc) > 0 && doc[len(doc)-1] != '\n' {
		doc += "\n"
	}
	return doc + fmt.Sprintf("\n[%s]\nfilename = %s\n", node, filename)
}
