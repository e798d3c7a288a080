package assemble

import (
	"fmt"
	"path/filepath"
	"strings"

	"spacebuild/internal/config"
	"spacebuild/internal/services"
)

// ScriptExtension is appended to every manifest source name.
const ScriptExtension = ".a65"

// Entry maps an assembler script to the output it produces. Output keeps the
// platform file-type suffix ("#TTAAAA") as part of its name.
type Entry struct {
	Source string
	Output string
}

// Script returns the script file name passed to the assembler.
func (e Entry) Script() string {
	return e.Source + ScriptExtension
}

// Manifest is the ordered list of assembler entries.
type Manifest []Entry

// FromConfig converts the configured build entries into a manifest.
func FromConfig(entries []config.BuildEntry) Manifest {
	manifest := make(Manifest, 0, len(entries))
	for _, entry := range entries {
		manifest = append(manifest, Entry{
			Source: strings.TrimSuffix(strings.TrimSpace(entry.Source), ScriptExtension),
			Output: strings.TrimSpace(entry.Output),
		})
	}
	return manifest
}

// Validate rejects manifests that could not be assembled: empty manifests,
// blank fields, sources that are not plain names, and outputs listed twice.
func (m Manifest) Validate() error {
	if len(m) == 0 {
		return services.Wrap(services.ErrConfiguration, "manifest", "validate", "manifest is empty", nil)
	}
	outputs := make(map[string]int, len(m))
	for i, entry := range m {
		switch {
		case entry.Source == "":
			return manifestError(i, "source is blank")
		case entry.Output == "":
			return manifestError(i, "output is blank")
		case strings.ContainsAny(entry.Source, `/\`) || filepath.Base(entry.Source) != entry.Source:
			return manifestError(i, fmt.Sprintf("source %q must be a plain script name", entry.Source))
		}
		if prev, ok := outputs[entry.Output]; ok {
			return manifestError(i, fmt.Sprintf("output %q already produced by entry %d", entry.Output, prev))
		}
		outputs[entry.Output] = i
	}
	return nil
}

func manifestError(index int, message string) error {
	return services.Wrap(services.ErrConfiguration, "manifest", fmt.Sprintf("entry %d", index), message, nil)
}
