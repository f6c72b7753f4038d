package settings

// ParamKind enumerates the value types an exporter parameter can declare.
type ParamKind int

const (
	ParamBool ParamKind = iota
	ParamString
	ParamFloat
	ParamInt
	ParamEnum
	ParamEnumSet
)

// ParamSpec declares one exporter parameter that may be set from the
// settings document. Selection-control parameters (which object set to
// export, output path) are deliberately absent: the pipeline owns those.
type ParamSpec struct {
	Name    string
	Kind    ParamKind
	Options []string // allowed values for ParamEnum and ParamEnumSet
}

// ExporterSpec describes one supported exporter backend.
type ExporterSpec struct {
	Name      string
	Extension string // canonical output extension, without the dot
	Params    []ParamSpec
}

// Registry is the immutable table of supported exporters. It is built once
// at startup and passed by reference to resolvers; there is no ambient
// global lookup.
type Registry struct {
	exporters map[string]ExporterSpec
}

// NewRegistry builds a registry from exporter specs.
func NewRegistry(specs ...ExporterSpec) *Registry {
	m := make(map[string]ExporterSpec, len(specs))
	for _, s := range specs {
		m[s.Name] = s
	}
	return &Registry{exporters: m}
}

// Lookup returns the spec for an exporter name.
func (r *Registry) Lookup(name string) (ExporterSpec, bool) {
	s, ok := r.exporters[name]
	return s, ok
}

// Names returns the registered exporter names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.exporters))
	for name := range r.exporters {
		names = append(names, name)
	}
	return names
}

var axisOptions = []string{"X", "Y", "Z", "-X", "-Y", "-Z"}

// DefaultRegistry returns the exporters known to work with
// selection-driven export. Currently only fbx.
func DefaultRegistry() *Registry {
	return NewRegistry(ExporterSpec{
		Name:      "fbx",
		Extension: "fbx",
		Params: []ParamSpec{
			{Name: "check_existing", Kind: ParamBool},
			{Name: "global_scale", Kind: ParamFloat},
			{Name: "apply_unit_scale", Kind: ParamBool},
			{Name: "apply_scale_options", Kind: ParamEnum,
				Options: []string{"FBX_SCALE_NONE", "FBX_SCALE_UNITS", "FBX_SCALE_CUSTOM", "FBX_SCALE_ALL"}},
			{Name: "use_space_transform", Kind: ParamBool},
			{Name: "bake_space_transform", Kind: ParamBool},
			{Name: "object_types", Kind: ParamEnumSet,
				Options: []string{"EMPTY", "CAMERA", "LIGHT", "ARMATURE", "MESH", "OTHER"}},
			{Name: "use_mesh_modifiers", Kind: ParamBool},
			{Name: "mesh_smooth_type", Kind: ParamEnum,
				Options: []string{"OFF", "FACE", "EDGE"}},
			{Name: "use_triangles", Kind: ParamBool},
			{Name: "use_custom_props", Kind: ParamBool},
			{Name: "embed_textures", Kind: ParamBool},
			{Name: "path_mode", Kind: ParamEnum,
				Options: []string{"AUTO", "ABSOLUTE", "RELATIVE", "MATCH", "STRIP", "COPY"}},
			{Name: "use_metadata", Kind: ParamBool},
			{Name: "axis_forward", Kind: ParamEnum, Options: axisOptions},
			{Name: "axis_up", Kind: ParamEnum, Options: axisOptions},
		},
	})
}
