package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	v1 "github.com/infracollect/arcwrap/apis/v1"
	"github.com/infracollect/arcwrap/internal/archive"
	"github.com/infracollect/arcwrap/internal/upload"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	defaultValidator = validator.New(validator.WithRequiredStructEnabled())
)

// ParseArchiveJob parses a YAML or JSON job file, validates its struct tags
// and checks that every task names exactly one operation.
func ParseArchiveJob(data []byte) (v1.ArchiveJob, error) {
	var job v1.ArchiveJob
	if err := yaml.Unmarshal(data, &job); err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("failed to unmarshal job data: %w", err)
	}

	if err := defaultValidator.Struct(job); err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("failed to validate job: %w", err)
	}

	var errs error
	for _, task := range job.Spec.Tasks {
		if _, err := ResolveTaskSpec(task); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return v1.ArchiveJob{}, fmt.Errorf("failed to validate job: %w", errs)
	}

	return job, nil
}

// FileUploader ships a local file somewhere and returns where it landed.
type FileUploader interface {
	UploadFile(ctx context.Context, fs afero.Fs, localPath string) (string, error)
}

// UploaderFactory builds the uploader for a task's upload target.
type UploaderFactory func(ctx context.Context, logger *zap.Logger, spec v1.S3UploadSpec) (FileUploader, error)

func newS3Uploader(ctx context.Context, logger *zap.Logger, spec v1.S3UploadSpec) (FileUploader, error) {
	target, err := upload.NewS3Target(ctx, logger, upload.S3Config{
		Bucket:          spec.Bucket,
		Region:          spec.Region,
		Endpoint:        spec.Endpoint,
		Prefix:          spec.Prefix,
		AccessKeyID:     spec.AccessKeyID,
		SecretAccessKey: spec.SecretAccessKey,
		ForcePathStyle:  spec.ForcePathStyle,
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

// TaskResult describes a finished task.
type TaskResult struct {
	ID        string
	Kind      string
	Output    string
	UploadURL string
}

type options struct {
	fs          afero.Fs
	archiveOpts []archive.Option
	newUploader UploaderFactory
}

type Option func(*options)

// WithFs sets the filesystem tasks read from and uploads stream from.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithArchiveOptions passes extra options to the job's archive.Archiver.
func WithArchiveOptions(opts ...archive.Option) Option {
	return func(o *options) { o.archiveOpts = append(o.archiveOpts, opts...) }
}

func WithUploaderFactory(f UploaderFactory) Option {
	return func(o *options) { o.newUploader = f }
}

type Runner struct {
	logger      *zap.Logger
	job         v1.ArchiveJob
	fs          afero.Fs
	archiver    *archive.Archiver
	newUploader UploaderFactory
}

func New(logger *zap.Logger, job v1.ArchiveJob, opts ...Option) *Runner {
	o := options{
		fs:          afero.NewOsFs(),
		newUploader: newS3Uploader,
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger.Info("creating runner", zap.String("job_name", job.Metadata.Name), zap.Int("tasks", len(job.Spec.Tasks)))

	archiveOpts := append([]archive.Option{
		archive.WithFs(o.fs),
		archive.WithLogger(logger.Named("archive")),
		archive.WithExitStatusCheck(job.Spec.CheckExitStatus),
	}, o.archiveOpts...)

	return &Runner{
		logger:      logger,
		job:         job,
		fs:          o.fs,
		archiver:    archive.New(archiveOpts...),
		newUploader: o.newUploader,
	}
}

// Run executes the job's tasks in order and stops at the first failure.
// Results of the tasks that completed are returned either way.
func (r *Runner) Run(ctx context.Context) ([]TaskResult, error) {
	results := make([]TaskResult, 0, len(r.job.Spec.Tasks))
	for _, task := range r.job.Spec.Tasks {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("context cancelled before task '%s': %w", task.ID, err)
		}

		result, err := r.runTask(ctx, task)
		if err != nil {
			return results, fmt.Errorf("task '%s' failed: %w", task.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (r *Runner) runTask(ctx context.Context, task v1.Task) (TaskResult, error) {
	resolved, err := ResolveTaskSpec(task)
	if err != nil {
		return TaskResult{}, err
	}

	logger := r.logger.With(zap.String("task_id", task.ID), zap.String("task_kind", resolved.Kind))
	logger.Info("running task")

	var output string
	switch spec := resolved.Spec.(type) {
	case *v1.ExtractTask:
		codec := archive.CodecFromPath(spec.Archive)
		if spec.Codec != "" {
			if codec, err = archive.ParseCodec(spec.Codec); err != nil {
				return TaskResult{}, err
			}
		}
		output = spec.Output
		err = r.archiver.ExtractSingleFile(ctx, codec, spec.Archive, spec.Output)
	case *v1.SevenZipTask:
		output = spec.Output
		err = r.archiver.CreateSevenZip(ctx, spec.Inputs, spec.Output, spec.Command)
	case *v1.TarTask:
		output = spec.Output
		err = r.archiver.CreateTar(ctx, spec.Inputs, spec.Output)
	default:
		return TaskResult{}, fmt.Errorf("unsupported task spec %T", resolved.Spec)
	}
	if err != nil {
		return TaskResult{}, err
	}

	result := TaskResult{ID: task.ID, Kind: resolved.Kind, Output: output}

	if task.Upload != nil && task.Upload.S3 != nil {
		uploader, err := r.newUploader(ctx, logger.Named("upload"), *task.Upload.S3)
		if err != nil {
			return TaskResult{}, fmt.Errorf("failed to create uploader: %w", err)
		}
		url, err := uploader.UploadFile(ctx, r.fs, output)
		if err != nil {
			return TaskResult{}, err
		}
		result.UploadURL = url
	}

	logger.Info("task finished", zap.String("output", output))
	return result, nil
}
