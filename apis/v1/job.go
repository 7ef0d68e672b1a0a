package v1

// ArchiveJobKind is the only kind accepted in job files.
const ArchiveJobKind = "ArchiveJob"

type ArchiveJob struct {
	Kind     string         `yaml:"kind" json:"kind" validate:"required,eq=ArchiveJob"`
	Metadata Metadata       `yaml:"metadata" json:"metadata"`
	Spec     ArchiveJobSpec `yaml:"spec" json:"spec"`
}

type Metadata struct {
	Name string `yaml:"name" json:"name" validate:"required"`
}

type ArchiveJobSpec struct {
	// CheckExitStatus fails a task when its archiver exits with a non-zero status.
	// When false the status is only logged.
	CheckExitStatus bool `yaml:"checkExitStatus,omitempty" json:"checkExitStatus,omitempty"`

	// Tasks run in order; the first failing task stops the job.
	Tasks []Task `yaml:"tasks" json:"tasks" validate:"required,min=1,unique=ID,dive"`
}

// Task is one archive operation (exactly one of the operation fields should be set).
type Task struct {
	ID       string        `yaml:"id" json:"id" validate:"required"`
	Extract  *ExtractTask  `yaml:"extract,omitempty" json:"extract,omitempty"`
	SevenZip *SevenZipTask `yaml:"sevenZip,omitempty" json:"sevenZip,omitempty"`
	Tar      *TarTask      `yaml:"tar,omitempty" json:"tar,omitempty"`

	// Upload ships the task's output file once the task succeeds.
	Upload *UploadSpec `yaml:"upload,omitempty" json:"upload,omitempty"`
}

// ExtractTask decompresses a single-file archive.
type ExtractTask struct {
	Archive string `yaml:"archive" json:"archive" validate:"required" template:""`
	Output  string `yaml:"output" json:"output" validate:"required" template:""`
	// Codec is gzip or zstd. Empty means guess from the archive name.
	Codec string `yaml:"codec,omitempty" json:"codec,omitempty" validate:"omitempty,oneof=gzip zstd"`
}

// SevenZipTask adds inputs to a 7z archive with the 7-Zip command line tool.
type SevenZipTask struct {
	Inputs []string `yaml:"inputs" json:"inputs" validate:"required,min=1,dive,required" template:""`
	Output string   `yaml:"output" json:"output" validate:"required" template:""`
	// Command overrides the 7z executable. Empty picks the platform default.
	Command string `yaml:"command,omitempty" json:"command,omitempty" template:""`
}

// TarTask writes inputs to an uncompressed tar archive with the native tar tool.
type TarTask struct {
	Inputs []string `yaml:"inputs" json:"inputs" validate:"required,min=1,dive,required" template:""`
	Output string   `yaml:"output" json:"output" validate:"required" template:""`
}

type UploadSpec struct {
	S3 *S3UploadSpec `yaml:"s3" json:"s3" validate:"required"`
}

// S3UploadSpec configures an S3-compatible upload target.
type S3UploadSpec struct {
	Bucket          string `yaml:"bucket" json:"bucket" validate:"required" template:""`
	Region          string `yaml:"region,omitempty" json:"region,omitempty" template:""`
	Endpoint        string `yaml:"endpoint,omitempty" json:"endpoint,omitempty" template:""`
	Prefix          string `yaml:"prefix,omitempty" json:"prefix,omitempty" template:""`
	AccessKeyID     string `yaml:"accessKeyId,omitempty" json:"accessKeyId,omitempty" template:""`
	SecretAccessKey string `yaml:"secretAccessKey,omitempty" json:"secretAccessKey,omitempty" template:""`
	ForcePathStyle  bool   `yaml:"forcePathStyle,omitempty" json:"forcePathStyle,omitempty"`
}
