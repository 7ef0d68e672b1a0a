package main

import (
	"context"
	"fmt"
	"io"
	"os"

	v1 "github.com/infracollect/arcwrap/apis/v1"
	"github.com/infracollect/arcwrap/internal/archive"
	"github.com/infracollect/arcwrap/internal/runner"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func allowedEnvFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "allowed-env",
		Usage: "Environment variables allowed in job configuration (can be repeated)",
	}
}

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "Run the archive tasks of a job file",
	Flags: []cli.Flag{
		allowedEnvFlag(),
	},
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      "job",
			UsageText: "The job file to run, or - for stdin",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		job, err := loadJob(command)
		if err != nil {
			return err
		}

		logger = logger.With(zap.String("job_name", job.Metadata.Name))
		execRunner, done := newCommandRunner(ctx, logger.Named("exec"))
		defer done()

		r := runner.New(logger.Named("runner"), job, runner.WithArchiveOptions(archive.WithRunner(execRunner)))
		results, err := r.Run(ctx)
		for _, result := range results {
			if result.UploadURL != "" {
				fmt.Printf("✓ %s (%s): %s -> %s\n", result.ID, result.Kind, result.Output, result.UploadURL)
			} else {
				fmt.Printf("✓ %s (%s): %s\n", result.ID, result.Kind, result.Output)
			}
		}
		if err != nil {
			return fmt.Errorf("failed to run job: %w", err)
		}

		return nil
	},
}

// loadJob reads, parses and templates the job named by the "job" argument.
func loadJob(command *cli.Command) (v1.ArchiveJob, error) {
	jobFilename := command.StringArg("job")
	if jobFilename == "" {
		return v1.ArchiveJob{}, fmt.Errorf("no job file provided")
	}

	data, err := readJobFile(jobFilename)
	if err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("failed to read job file '%s': %w", jobFilename, err)
	}

	job, err := runner.ParseArchiveJob(data)
	if err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("job file '%s' is invalid: %w", jobFilename, formatValidationError(err))
	}

	variables, err := runner.BuildVariables(job, command.StringSlice("allowed-env"))
	if err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("failed to build variables: %w", err)
	}

	if err := runner.ExpandTemplates(&job, variables); err != nil {
		return v1.ArchiveJob{}, fmt.Errorf("failed to expand templates: %w", err)
	}

	return job, nil
}

func readJobFile(filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filename)
}
