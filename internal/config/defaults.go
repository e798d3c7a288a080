package config

const (
	defaultProjectRoot = "."
	defaultAssetsDir   = "assets"
	defaultSourceDir   = "source"
	defaultOutputDir   = "bin"
	defaultToolsDir    = "tools/bin"
	defaultStateDir    = "~/.local/share/spacebuild"
	defaultLogDir      = "~/.local/share/spacebuild/logs"
	defaultSoundTool   = "packsound"
	defaultVideoTool   = "packvideo"
	defaultSoundFlag   = "-s"
	defaultVideoFlag   = "-v"
	defaultAssembler   = "a65816"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// DefaultMediaSets returns the Space Ace media sets in conversion order.
func DefaultMediaSets() []string {
	return []string{"movie", "death"}
}

// DefaultBuildEntries returns the Space Ace assembler manifest: the Finder
// icon, the application, and its resource fork.
func DefaultBuildEntries() []BuildEntry {
	return []BuildEntry{
		{Source: "icon", Output: "spaceace.icon#ca0000"},
		{Source: "buildall", Output: "SpaceAce#b3db03"},
		{Source: "spaceacerez", Output: "SpaceAce#b3db03r"},
	}
}

// Default returns a Config populated with repository defaults.
//
// Build.Entries stays empty here: TOML array tables append to an existing
// slice, so the default manifest is applied during normalization instead.
func Default() Config {
	return Config{
		Paths: Paths{
			ProjectRoot: defaultProjectRoot,
			AssetsDir:   defaultAssetsDir,
			SourceDir:   defaultSourceDir,
			OutputDir:   defaultOutputDir,
			ToolsDir:    defaultToolsDir,
			StateDir:    defaultStateDir,
			LogDir:      defaultLogDir,
		},
		Tools: Tools{
			Sound:         defaultSoundTool,
			Video:         defaultVideoTool,
			SoundFlag:     defaultSoundFlag,
			VideoFlag:     defaultVideoFlag,
			Assembler:     defaultAssembler,
			AssemblerArgs: []string{"."},
			CleanupFiles:  []string{"_FileInformation.txt"},
		},
		Prebuild: Prebuild{
			MediaSets: DefaultMediaSets(),
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
