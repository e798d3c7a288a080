package driver

import (
	"path/filepath"

	"spacebuild/internal/assemble"
	"spacebuild/internal/convert"
	"spacebuild/internal/deps"
)

// SetPlan is the dry-run view of one media set.
type SetPlan struct {
	Name  string
	Dir   string
	Items []convert.PlannedItem
	Err   error
}

// Plan is the dry-run view of a whole project.
type Plan struct {
	Root      string
	OutputDir string
	Sets      []SetPlan
	Entries   []assemble.PlannedEntry
}

// Stale counts the items and entries a run would rebuild.
func (p Plan) Stale() int {
	count := 0
	for _, set := range p.Sets {
		for _, item := range set.Items {
			if item.Stale {
				count++
			}
		}
	}
	for _, entry := range p.Entries {
		if entry.Stale {
			count++
		}
	}
	return count
}

// Plan inspects the project without invoking any tool.
func (d *Driver) Plan(layout Layout) Plan {
	root := projectRoot(layout.AssetsDir)
	outDir := d.cfg.OutputDirFor(root)
	plan := Plan{Root: root, OutputDir: outDir}
	for _, set := range d.cfg.Prebuild.MediaSets {
		dir := filepath.Join(layout.AssetsDir, set)
		items, err := convert.Plan(dir, outDir)
		plan.Sets = append(plan.Sets, SetPlan{Name: set, Dir: dir, Items: items, Err: err})
	}
	plan.Entries = assemble.Plan(layout.SourceDir, outDir, assemble.FromConfig(d.cfg.Build.Entries))
	return plan
}

// Requirements lists the external tools a full run needs. Converter commands
// are the located paths; when a converter cannot be located its logical name
// is reported instead so the check fails with a readable command.
func (d *Driver) Requirements(layout Layout) []deps.Requirement {
	root := projectRoot(layout.AssetsDir)
	toolsDir := d.cfg.ToolsDirFor(root)
	resolve := func(name string) string {
		if path, err := d.locate(toolsDir, name); err == nil {
			return path
		}
		return name
	}
	return []deps.Requirement{
		{Name: "Sound converter", Command: resolve(d.cfg.Tools.Sound), Description: "Converts .wav media"},
		{Name: "Video converter", Command: resolve(d.cfg.Tools.Video), Description: "Converts .gif media"},
		{Name: "Assembler", Command: d.cfg.Tools.Assembler, Description: "Assembles source scripts"},
	}
}
