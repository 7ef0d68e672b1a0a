package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/infracollect/arcwrap/internal/archive"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func checkExitFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "check-exit",
		Usage: "Fail when the archiver exits with a non-zero status",
	}
}

var extractCommand = &cli.Command{
	Name:  "extract",
	Usage: "Decompress a single-file gzip or zstd archive",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "codec",
			Usage: "Compression codec (gzip, zstd); guessed from the archive name when empty",
			Action: func(ctx context.Context, command *cli.Command, s string) error {
				_, err := archive.ParseCodec(s)
				return err
			},
		},
	},
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      "archive",
			UsageText: "The archive to decompress",
		},
		&cli.StringArg{
			Name:      "output",
			UsageText: "The file to write; defaults to the archive name without its extension",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		archivePath := command.StringArg("archive")
		if archivePath == "" {
			return fmt.Errorf("no archive provided")
		}

		outputPath := command.StringArg("output")
		if outputPath == "" {
			outputPath = strings.TrimSuffix(archivePath, filepath.Ext(archivePath))
			if outputPath == archivePath {
				return fmt.Errorf("cannot derive an output name from '%s', pass one explicitly", archivePath)
			}
		}

		codec := archive.CodecFromPath(archivePath)
		if name := command.String("codec"); name != "" {
			var err error
			if codec, err = archive.ParseCodec(name); err != nil {
				return err
			}
		}

		a := archive.New(archive.WithLogger(logger.Named("archive")))
		if err := a.ExtractSingleFile(ctx, codec, archivePath, outputPath); err != nil {
			return fmt.Errorf("failed to extract '%s': %w", archivePath, err)
		}

		logger.Info("archive extracted", zap.String("archive_path", archivePath), zap.String("output_path", outputPath))
		return nil
	},
}

var sevenZipCommand = &cli.Command{
	Name:      "7z",
	Usage:     "Add files and directories to a 7z archive with 7-Zip",
	ArgsUsage: "<archive> <input>...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "command",
			Usage: "Path of the 7z executable (default: platform specific)",
		},
		checkExitFlag(),
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		out, inputs, err := archiveArgs(command)
		if err != nil {
			return err
		}

		a, done := newArchiver(ctx, command)
		defer done()

		if err := a.CreateSevenZip(ctx, inputs, out, command.String("command")); err != nil {
			return fmt.Errorf("failed to create 7z archive '%s': %w", out, err)
		}
		return nil
	},
}

var tarCommand = &cli.Command{
	Name:      "tar",
	Usage:     "Write files and directories to a tar archive with the native tar tool",
	ArgsUsage: "<archive> <input>...",
	Flags: []cli.Flag{
		checkExitFlag(),
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		out, inputs, err := archiveArgs(command)
		if err != nil {
			return err
		}

		a, done := newArchiver(ctx, command)
		defer done()

		if err := a.CreateTar(ctx, inputs, out); err != nil {
			return fmt.Errorf("failed to create tar archive '%s': %w", out, err)
		}
		return nil
	},
}

func archiveArgs(command *cli.Command) (string, []string, error) {
	args := command.Args()
	if args.Len() < 2 {
		return "", nil, fmt.Errorf("expected an archive path followed by at least one input, got %d argument(s)", args.Len())
	}
	return args.First(), args.Tail(), nil
}

func newArchiver(ctx context.Context, command *cli.Command) (*archive.Archiver, func()) {
	logger := getLogger(ctx).Named("archive")
	runner, done := newCommandRunner(ctx, logger.Named("exec"))
	return archive.New(
		archive.WithLogger(logger),
		archive.WithRunner(runner),
		archive.WithExitStatusCheck(command.Bool("check-exit")),
	), done
}
