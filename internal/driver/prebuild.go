package driver

import (
	"context"
	"path/filepath"

	"spacebuild/internal/convert"
	"spacebuild/internal/fileutil"
	"spacebuild/internal/logging"
	"spacebuild/internal/pipeline"
	"spacebuild/internal/services"
)

func (d *Driver) prebuild(ctx context.Context, workingDir string, observer pipeline.Observer) pipeline.Result {
	ctx = services.WithPipeline(ctx, "prebuild")
	logger := logging.WithContext(ctx, d.logger)
	root := projectRoot(workingDir)

	outDir := d.cfg.OutputDirFor(root)
	if err := fileutil.EnsureDir(outDir); err != nil {
		return pipeline.Failure(pipeline.StatusSetupFailure, services.Wrap(services.ErrFilesystem, "prebuild", "output dir", "", err))
	}

	tools, err := d.converterTools(root)
	if err != nil {
		logger.Error("converter tools unavailable", logging.Error(err))
		return pipeline.Failure(pipeline.StatusSetupFailure, err)
	}

	result := pipeline.Success()
	for _, set := range d.cfg.Prebuild.MediaSets {
		sourceDir := filepath.Join(workingDir, set)
		logger.Info("converting media set",
			logging.String(logging.FieldEventType, "media_set_start"),
			logging.String("media_set", set),
			logging.String("source_dir", sourceDir),
		)
		result = result.Then(convert.Run(ctx, convert.Options{
			Tools:     tools,
			SourceDir: sourceDir,
			DestDir:   outDir,
			Executor:  d.executor,
			Logger:    d.base,
			Observer:  observer,
		}))
		if !result.OK() {
			return result
		}
	}
	return result
}

// converterTools resolves the sound and video converters under the project's
// tools directory.
func (d *Driver) converterTools(root string) (convert.Tools, error) {
	toolsDir := d.cfg.ToolsDirFor(root)
	sound, err := d.locate(toolsDir, d.cfg.Tools.Sound)
	if err != nil {
		return nil, err
	}
	video, err := d.locate(toolsDir, d.cfg.Tools.Video)
	if err != nil {
		return nil, err
	}
	return convert.Tools{
		convert.KindAudio: {Path: sound, Flag: d.cfg.Tools.SoundFlag},
		convert.KindVideo: {Path: video, Flag: d.cfg.Tools.VideoFlag},
	}, nil
}
