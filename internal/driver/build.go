package driver

import (
	"context"

	"spacebuild/internal/assemble"
	"spacebuild/internal/fileutil"
	"spacebuild/internal/logging"
	"spacebuild/internal/pipeline"
	"spacebuild/internal/services"
)

func (d *Driver) build(ctx context.Context, workingDir string, observer pipeline.Observer) pipeline.Result {
	ctx = services.WithPipeline(ctx, "build")
	root := projectRoot(workingDir)

	outDir := d.cfg.OutputDirFor(root)
	if err := fileutil.EnsureDir(outDir); err != nil {
		return pipeline.Failure(pipeline.StatusSetupFailure, services.Wrap(services.ErrFilesystem, "build", "output dir", "", err))
	}

	manifest := assemble.FromConfig(d.cfg.Build.Entries)
	if err := manifest.Validate(); err != nil {
		logging.WithContext(ctx, d.logger).Error("invalid manifest", logging.Error(err))
		return pipeline.Failure(pipeline.StatusSetupFailure, err)
	}

	return assemble.Run(ctx, assemble.Options{
		Assembler:    d.cfg.Tools.Assembler,
		Args:         d.cfg.Tools.AssemblerArgs,
		WorkingDir:   workingDir,
		DestDir:      outDir,
		Manifest:     manifest,
		CleanupFiles: d.cfg.Tools.CleanupFiles,
		Executor:     d.executor,
		Logger:       d.base,
		Observer:     observer,
	})
}
