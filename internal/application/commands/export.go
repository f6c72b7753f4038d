package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickexport/internal/application"
	"quickexport/internal/domain"
	"quickexport/internal/logger"
	"quickexport/internal/ports"
	"quickexport/internal/settings"
)

// Status classifies the outcome of a finished export command.
type Status int

const (
	// StatusExported means the export completed with a non-empty
	// selection.
	StatusExported Status = iota
	// StatusEmpty means the export completed but nothing was selected.
	// The file was still written; the caller should surface a warning.
	StatusEmpty
	// StatusFirstRun means no settings existed for the node. Scaffolding
	// was written as a side effect and the user should re-invoke.
	StatusFirstRun
)

func (s Status) String() string {
	switch s {
	case StatusExported:
		return "exported"
	case StatusEmpty:
		return "empty"
	case StatusFirstRun:
		return "first-run"
	default:
		return "unknown"
	}
}

// ExportResult contains the result of an export command.
type ExportResult struct {
	Status   Status
	Node     string
	Path     string
	Message  string
	Warnings []string
}

// ExportCommand exports every included leaf under one scene node,
// restoring all temporarily mutated scene state on every exit path.
type ExportCommand struct {
	host     ports.SceneHost
	resolver *settings.Resolver
	log      ports.ExportLog // optional
	NodeName string
}

// NewExportCommand creates a new ExportCommand. log may be nil.
func NewExportCommand(host ports.SceneHost, reg *settings.Registry, log ports.ExportLog, nodeName string) *ExportCommand {
	return &ExportCommand{
		host:     host,
		resolver: settings.NewResolver(reg, host),
		log:      log,
		NodeName: nodeName,
	}
}

// Validate checks if the export can be attempted at all.
func (c *ExportCommand) Validate() error {
	if c.NodeName == "" {
		return &application.ValidationError{
			Field:   "node",
			Message: "node name is required",
		}
	}
	return nil
}

// Execute runs the export command.
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root := c.host.Root()
	target := root.Find(c.NodeName)
	if target == nil {
		return nil, fmt.Errorf("%w: %q", application.ErrNodeNotFound, c.NodeName)
	}

	logger.Info("exporting node", logger.Fields{"node": target.Name})

	doc, _ := c.host.SettingsDocument()
	plan, err := c.resolver.Resolve(doc, target.Name)
	if err != nil {
		var first *settings.FirstRunError
		if errors.As(err, &first) {
			return c.scaffold(first)
		}
		return nil, err
	}
	for _, w := range plan.Warnings {
		logger.Warn(w, nil)
	}

	res, err := c.run(root, target, plan)
	c.record(target.Name, plan, res, err)
	return res, err
}

// scaffold writes the first-run settings document or section and reports
// a cancelled-with-notice outcome. The user reviews the settings and
// invokes the export again.
func (c *ExportCommand) scaffold(first *settings.FirstRunError) (*ExportResult, error) {
	doc, exists := c.host.SettingsDocument()

	var text, msg string
	if first.CreateDocument || !exists {
		text = settings.DefaultDocument(first.Node, first.Filename)
		msg = fmt.Sprintf("no settings document was present, so a default one has been created; review %s and export again", settings.DocumentName)
	} else {
		text = settings.AppendSection(doc, first.Node, first.Filename)
		msg = fmt.Sprintf("%q had no settings section yet; one has been added to %s, review it and export again", first.Node, settings.DocumentName)
	}
	if err := c.host.WriteSettingsDocument(text); err != nil {
		return nil, fmt.Errorf("write settings document: %w", err)
	}

	logger.Info("wrote settings scaffolding", logger.Fields{"node": first.Node, "filename": first.Filename})
	return &ExportResult{Status: StatusFirstRun, Node: first.Node, Message: msg}, nil
}

func (c *ExportCommand) record(node string, plan *settings.Plan, res *ExportResult, err error) {
	if c.log == nil {
		return
	}
	entry := ports.ExportEntry{
		Node:     node,
		Exporter: plan.Exporter.Name,
		Path:     plan.Path,
		When:     time.Now(),
	}
	if err != nil {
		entry.Status = "error"
		entry.Message = err.Error()
	} else {
		entry.Status = res.Status.String()
		entry.Message = res.Message
	}
	if rerr := c.log.Record(entry); rerr != nil {
		logger.Warn("could not record export history", logger.Fields{"error": rerr.Error()})
	}
}

// flagRecord remembers one node's or leaf's selection-blocking flags so
// they can be restored after the export. Exactly one of node/leaf is set.
type flagRecord struct {
	node           *domain.Node
	leaf           *domain.Leaf
	selectDisabled bool
	viewportHidden bool
}

// recordFlagged collects every leaf under the target and every node in
// the scene whose selection-blocking flags are set. Nodes outside the
// target's subtree matter too: flags on an ancestor of the target block
// selection of its leaves just the same.
func recordFlagged(root, target *domain.Node) []flagRecord {
	var saved []flagRecord
	for _, l := range target.AllLeaves() {
		if l.SelectDisabled || l.ViewportHidden {
			saved = append(saved, flagRecord{leaf: l, selectDisabled: l.SelectDisabled, viewportHidden: l.ViewportHidden})
		}
	}
	root.Walk(func(n *domain.Node) {
		if n == root {
			// The scene root carries no user-visible flags.
			return
		}
		if n.SelectDisabled || n.ViewportHidden {
			saved = append(saved, flagRecord{node: n, selectDisabled: n.SelectDisabled, viewportHidden: n.ViewportHidden})
		}
	})
	return saved
}

func clearFlags(saved []flagRecord) {
	for _, rec := range saved {
		if rec.leaf != nil {
			rec.leaf.SelectDisabled = false
			rec.leaf.ViewportHidden = false
		} else {
			rec.node.SelectDisabled = false
			rec.node.ViewportHidden = false
		}
	}
}

func restoreFlags(saved []flagRecord) {
	for _, rec := range saved {
		if rec.leaf != nil {
			rec.leaf.SelectDisabled = rec.selectDisabled
			rec.leaf.ViewportHidden = rec.viewportHidden
		} else {
			rec.node.SelectDisabled = rec.selectDisabled
			rec.node.ViewportHidden = rec.viewportHidden
		}
	}
}

// run sequences the export proper: temporary view context, exclusion,
// flag relaxation, mesh joining, selection and the export primitive.
// Every acquisition is released in strict reverse order on every exit
// path.
func (c *ExportCommand) run(root, target *domain.Node, plan *settings.Plan) (res *ExportResult, err error) {
	// Record mutable state before mutating anything.
	saved := recordFlagged(root, target)

	// Leaves invisible in the user's view are recorded now: the exclusion
	// churn below resets per-view visibility, so this cannot be derived
	// later.
	hidden := make(map[*domain.Leaf]bool)
	if plan.UseVisible {
		userView := c.host.ActiveView()
		for _, l := range target.AllLeaves() {
			if !userView.Visible(l) {
				hidden[l] = true
			}
		}
	}

	assign := domain.PropagateExclusion(root, target, plan.NotExportable)

	var units []*domain.Node
	if len(plan.JoinRequests) > 0 {
		requested := make(map[string]bool, len(plan.JoinRequests))
		for name := range plan.JoinRequests {
			requested[name] = true
		}
		units = domain.PlanMerge(target, requested)
		for _, u := range units {
			logger.Debug("join planned", logger.Fields{"node": u.Name, "joined": plan.JoinRequests[u.Name]})
		}
	}

	savedView := c.host.ActiveView()
	view, err := c.host.NewView()
	if err != nil {
		return nil, &application.HostError{Op: "create temporary view context", Err: err}
	}
	if view == savedView {
		return nil, &application.InvariantError{Msg: "temporary view context equals the active view"}
	}
	if err := c.host.SetActiveView(view); err != nil {
		if rerr := c.host.RemoveView(view); rerr != nil {
			logger.Warn("could not remove temporary view context", logger.Fields{"error": rerr.Error()})
		}
		return nil, &application.HostError{Op: "switch to temporary view context", Err: err}
	}
	defer func() {
		// Switching back restores the user's selection and exclusion
		// state; then the temporary context is destroyed.
		if rerr := c.host.SetActiveView(savedView); rerr != nil {
			logger.Warn("could not restore view context", logger.Fields{"error": rerr.Error()})
		}
		if rerr := c.host.RemoveView(view); rerr != nil {
			logger.Warn("could not remove temporary view context", logger.Fields{"error": rerr.Error()})
		}
	}()

	// Apply the propagated assignment to the temporary context only, in
	// parent-before-child order.
	root.Walk(func(n *domain.Node) {
		if inc, ok := assign[n.Name]; ok {
			view.SetExcluded(n.Name, inc != domain.InclusionAllowed)
			logger.Debug("inclusion", logger.Fields{"node": n.Name, "state": inc.String()})
		}
	})

	defer restoreFlags(saved)
	clearFlags(saved)

	return c.joinAndExport(view, target, plan, hidden, units)
}

// joinAndExport performs the merge side effects, computes the final
// selection and invokes the export primitive. All leaves created along
// the way are removed again on every exit path.
func (c *ExportCommand) joinAndExport(view ports.ViewContext, target *domain.Node, plan *settings.Plan, hidden map[*domain.Leaf]bool, units []*domain.Node) (res *ExportResult, err error) {
	var joined, duplicated, orphaned []*domain.Leaf
	defer func() {
		for _, l := range joined {
			c.removeQuiet(l)
		}
		for _, l := range duplicated {
			c.removeQuiet(l)
		}
		for _, l := range orphaned {
			c.removeQuiet(l)
		}
	}()

	for _, unit := range units {
		if err := selectIncluded(view, unit, hidden, true); err != nil {
			return nil, &application.HostError{Op: fmt.Sprintf("select meshes in %q", unit.Name), Err: err}
		}
		if len(view.Selected()) == 0 {
			continue
		}

		if err := c.host.Duplicate(view); err != nil {
			return nil, &application.HostError{Op: fmt.Sprintf("duplicate meshes in %q", unit.Name), Err: err}
		}
		duplicated = view.Selected()

		if len(duplicated) > 1 {
			if err := c.host.Join(view); err != nil {
				return nil, &application.HostError{Op: fmt.Sprintf("join meshes in %q", unit.Name), Err: err}
			}
		}

		sel := view.Selected()
		if len(sel) != 1 {
			orphaned = append(orphaned, sel...)
			duplicated = nil
			return nil, &application.InvariantError{
				Msg: fmt.Sprintf("join in %q left %d selected leaves, want exactly 1", unit.Name, len(sel)),
			}
		}

		leaf := sel[0]
		if err := c.host.RenameLeaf(leaf, plan.JoinRequests[unit.Name]); err != nil {
			orphaned = append(orphaned, leaf)
			duplicated = nil
			return nil, &application.HostError{Op: fmt.Sprintf("name joined mesh for %q", unit.Name), Err: err}
		}
		joined = append(joined, leaf)
		duplicated = nil
		logger.Debug("joined meshes", logger.Fields{"node": unit.Name, "leaf": leaf.Name})
	}

	// Base selection. With merge units present it holds both the original
	// meshes and the joined replacements; the next two steps resolve that.
	if err := selectIncluded(view, target, hidden, false); err != nil {
		return nil, &application.HostError{Op: "select leaves for export", Err: err}
	}
	for _, unit := range units {
		for _, l := range unit.AllLeaves() {
			if l.Kind == domain.KindMesh {
				view.Deselect(l)
			}
		}
	}
	for _, l := range joined {
		if err := view.Select(l); err != nil {
			return nil, &application.HostError{Op: fmt.Sprintf("select joined mesh %q", l.Name), Err: err}
		}
	}

	final := view.Selected()
	empty := len(final) == 0
	for _, l := range final {
		logger.Debug("selected for export", logger.Fields{"leaf": l.Name, "kind": l.Kind.String()})
	}

	if err := c.host.Export(plan.Exporter.Name, plan.Params, plan.Path, view); err != nil {
		return nil, &application.HostError{Op: "export", Err: err}
	}

	msg := fmt.Sprintf("exported %q to %s", target.Name, plan.Path)
	status := StatusExported
	if empty {
		status = StatusEmpty
		msg = "export is empty: " + msg
	}
	return &ExportResult{
		Status:   status,
		Node:     target.Name,
		Path:     plan.Path,
		Message:  msg,
		Warnings: plan.Warnings,
	}, nil
}

// removeQuiet deletes a leaf created during merging. Cleanup keeps going
// whatever happens; a leaf that is already gone is fine.
func (c *ExportCommand) removeQuiet(leaf *domain.Leaf) {
	if err := c.host.RemoveLeaf(leaf); err != nil {
		logger.Debug("cleanup remove failed", logger.Fields{"leaf": leaf.Name, "error": err.Error()})
	}
}
