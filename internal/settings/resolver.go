package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Paths resolves filesystem locations the way the scene host does.
type Paths interface {
	Saved() bool
	AbsPath(path string) (string, error)
}

// RelPrefix is the host convention for a path relative to the document's
// directory.
const RelPrefix = "//"

const (
	defaultExporter  = "fbx"
	defaultDirectory = RelPrefix
)

// Section keys understood by the pipeline itself rather than passed to an
// exporter.
const (
	keyExporter       = "exporter"
	keyDirectory      = "directory"
	keyFilename       = "filename"
	keyExportable     = "exportable"
	keyJoinMeshes     = "join_meshes"
	keyJoinedMeshName = "joined_mesh_name"
	keyUseVisible     = "use_visible"
)

// Plan is everything resolved from the settings document that one export
// run needs.
type Plan struct {
	Node     string
	Exporter ExporterSpec
	Params   map[string]any
	Path     string // absolute output file path

	// UseVisible activates the visibility filter: leaves invisible in the
	// user's view when the run starts are left out of the export.
	UseVisible bool

	// Global scans over every section, since these affect propagation and
	// merging for the whole tree, not just the export target.
	NotExportable map[string]bool   // node names with exportable = false
	JoinRequests  map[string]string // node name -> joined leaf name

	Warnings []string
}

// Resolver resolves per-node export settings from the host's settings
// document, a section-based INI text with a DEFAULT section supplying
// fallbacks for every other section.
type Resolver struct {
	reg   *Registry
	paths Paths
}

// NewResolver builds a resolver over an exporter registry and the host's
// path conventions.
func NewResolver(reg *Registry, paths Paths) *Resolver {
	return &Resolver{reg: reg, paths: paths}
}

// Resolve builds the export plan for one node. A missing document or
// section yields a *FirstRunError; every other failure is fatal for this
// invocation and discards all partial results.
func (r *Resolver) Resolve(doc, node string) (*Plan, error) {
	createDoc := strings.TrimSpace(doc) == ""

	f := ini.Empty()
	if !createDoc {
		var err error
		f, err = ini.Load([]byte(doc))
		if err != nil {
			return nil, fmt.Errorf("parse settings document: %w", err)
		}
	}

	appendSection := false
	if _, err := f.GetSection(node); err != nil {
		appendSection = true
	}

	plan := &Plan{Node: node}

	if !r.boolValue(f, node, keyExportable, true, &plan.Warnings) {
		return nil, &NotExportableError{Node: node}
	}

	exporterName := r.value(f, node, keyExporter, defaultExporter)
	spec, ok := r.reg.Lookup(exporterName)
	if !ok {
		return nil, &UnknownExporterError{Node: node, Exporter: exporterName}
	}
	plan.Exporter = spec

	filename := r.value(f, node, keyFilename, node+"."+spec.Extension)

	dir := r.value(f, node, keyDirectory, defaultDirectory)
	switch {
	case strings.HasPrefix(dir, "./") || strings.HasPrefix(dir, `.\`):
		plan.Warnings = append(plan.Warnings, fmt.Sprintf(
			"export directory starts with %q, but a path relative to the host document uses the prefix %q; using that instead", dir[:2], RelPrefix))
		dir = RelPrefix + dir[2:]
	case dir == ".":
		plan.Warnings = append(plan.Warnings, fmt.Sprintf(
			"export directory is \".\", but a path relative to the host document is written %q; using that instead", RelPrefix))
		dir = RelPrefix
	}

	if createDoc || appendSection {
		return nil, &FirstRunError{Node: node, Filename: filename, CreateDocument: createDoc}
	}

	if strings.HasPrefix(dir, RelPrefix) && !r.paths.Saved() {
		return nil, fmt.Errorf("export directory %q is relative to the host document, but the %w", dir, ErrDocumentNotSaved)
	}

	absDir, err := r.paths.AbsPath(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve export directory %q: %w", dir, err)
	}
	if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
		return nil, &DirectoryError{Path: absDir}
	}

	params, err := r.exporterParams(f, spec, node)
	if err != nil {
		return nil, err
	}
	plan.Params = params
	plan.UseVisible = r.boolValue(f, node, keyUseVisible, false, &plan.Warnings)

	if err := r.scanSections(f, plan); err != nil {
		return nil, err
	}

	filename = ensureExt(filename, "."+spec.Extension)
	plan.Path = filepath.Join(absDir, sanitizeFilename(filename))
	return plan, nil
}

// value looks a key up in the node's section, then in the DEFAULT
// section, then falls back.
func (r *Resolver) value(f *ini.File, section, key, fallback string) string {
	if sec, err := f.GetSection(section); err == nil && sec.HasKey(key) {
		return sec.Key(key).String()
	}
	if def, err := f.GetSection(ini.DefaultSection); err == nil && def.HasKey(key) {
		return def.Key(key).String()
	}
	return fallback
}

func (r *Resolver) boolValue(f *ini.File, section, key string, fallback bool, warnings *[]string) bool {
	raw := r.value(f, section, key, "")
	if raw == "" {
		return fallback
	}
	b, err := parseBool(raw)
	if err != nil {
		// Malformed booleans on the reserved keys fall back with a
		// warning rather than aborting; per-exporter parameters are the
		// strict ones.
		*warnings = append(*warnings, fmt.Sprintf("ignoring malformed boolean %q for setting %q", raw, key))
		return fallback
	}
	return b
}

// exporterParams coerces every schema-declared parameter present in the
// document. All-or-nothing: the first bad value aborts the whole plan.
func (r *Resolver) exporterParams(f *ini.File, spec ExporterSpec, node string) (map[string]any, error) {
	params := make(map[string]any)
	for _, p := range spec.Params {
		raw := r.value(f, node, p.Name, "")
		found := r.hasKey(f, node, p.Name)
		if !found {
			continue
		}
		switch p.Kind {
		case ParamBool:
			b, err := parseBool(raw)
			if err != nil {
				return nil, &ParamError{Key: p.Name, Want: "a boolean"}
			}
			params[p.Name] = b
		case ParamString:
			params[p.Name] = raw
		case ParamFloat:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &ParamError{Key: p.Name, Want: "a number"}
			}
			params[p.Name] = v
		case ParamInt:
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, &ParamError{Key: p.Name, Want: "an integer (whole number)"}
			}
			params[p.Name] = v
		case ParamEnum:
			if !slices.Contains(p.Options, raw) {
				return nil, &ParamError{Key: p.Name, Want: "one of " + strings.Join(p.Options, ", ")}
			}
			params[p.Name] = raw
		case ParamEnumSet:
			tokens := strings.Split(raw, ",")
			for _, tok := range tokens {
				if !slices.Contains(p.Options, tok) {
					return nil, &ParamError{Key: p.Name, Want: "a comma-separated list out of " + strings.Join(p.Options, ", ")}
				}
			}
			params[p.Name] = tokens
		}
	}
	// The exporter skips the overwrite check unless asked not to.
	if spec.Name == "fbx" {
		if _, ok := params["check_existing"]; !ok {
			params["check_existing"] = false
		}
	}
	return params, nil
}

func (r *Resolver) hasKey(f *ini.File, section, key string) bool {
	if sec, err := f.GetSection(section); err == nil && sec.HasKey(key) {
		return true
	}
	if def, err := f.GetSection(ini.DefaultSection); err == nil && def.HasKey(key) {
		return true
	}
	return false
}

// scanSections walks every section in the document to collect the global
// not-exportable name set and the join requests with their resolved
// joined-leaf names.
func (r *Resolver) scanSections(f *ini.File, plan *Plan) error {
	plan.NotExportable = make(map[string]bool)
	plan.JoinRequests = make(map[string]string)
	for _, name := range f.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		if !r.boolValue(f, name, keyExportable, true, &plan.Warnings) {
			plan.NotExportable[name] = true
		}
		if r.boolValue(f, name, keyJoinMeshes, false, &plan.Warnings) {
			plan.JoinRequests[name] = r.value(f, name, keyJoinedMeshName, name)
		}
	}
	return nil
}

// parseBool accepts the value spellings the section format documents:
// 1/0, yes/no, on/off, true/false, case-insensitive.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "yes", "true", "on":
		return true, nil
	case "0", "no", "false", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q", raw)
	}
}

// ensureExt appends ext unless the filename already ends with it,
// compared case-insensitively.
func ensureExt(filename, ext string) string {
	if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(ext)) {
		return filename
	}
	return filename + ext
}

// sanitizeFilename replaces characters that are illegal in file names on
// common filesystems with underscores.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`\/:*?"'<>|`, r) {
			return '_'
		}
		return r
	}, name)
}
