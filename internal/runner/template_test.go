package runner

import (
	"testing"

	v1 "github.com/infracollect/arcwrap/apis/v1"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTemplates_String(t *testing.T) {
	type S struct {
		Path string `template:""`
	}
	in := S{Path: "${JOB_NAME}/data"}
	err := ExpandTemplates(&in, map[string]string{"JOB_NAME": "my-job"})
	require.NoError(t, err)
	assert.Equal(t, S{Path: "my-job/data"}, in)
}

func TestExpandTemplates_UntaggedStringLeftAlone(t *testing.T) {
	type S struct {
		Path  string
		Other string `template:"-"`
	}
	in := S{Path: "${JOB_NAME}", Other: "${JOB_NAME}"}
	err := ExpandTemplates(&in, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, S{Path: "${JOB_NAME}", Other: "${JOB_NAME}"}, in)
}

func TestExpandTemplates_PtrString(t *testing.T) {
	type S struct {
		Path *string `template:""`
	}
	in := S{Path: lo.ToPtr("${JOB_NAME}")}
	err := ExpandTemplates(&in, map[string]string{"JOB_NAME": "my-job"})
	require.NoError(t, err)
	require.NotNil(t, in.Path)
	assert.Equal(t, "my-job", *in.Path)
}

func TestExpandTemplates_PtrStringNil(t *testing.T) {
	type S struct {
		Path *string `template:""`
	}
	in := S{Path: nil}
	err := ExpandTemplates(&in, map[string]string{})
	require.NoError(t, err)
	assert.Nil(t, in.Path)
}

func TestExpandTemplates_StringSlice(t *testing.T) {
	type S struct {
		Inputs []string `template:""`
		Raw    []string
	}
	in := S{Inputs: []string{"${DIR}/a", "${DIR}/b"}, Raw: []string{"${DIR}"}}
	err := ExpandTemplates(&in, map[string]string{"DIR": "/srv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/a", "/srv/b"}, in.Inputs)
	assert.Equal(t, []string{"${DIR}"}, in.Raw)
}

func TestExpandTemplates_MapStringString(t *testing.T) {
	type S struct {
		Labels map[string]string
	}
	in := S{Labels: map[string]string{"job": "${JOB_NAME}"}}
	err := ExpandTemplates(&in, map[string]string{"JOB_NAME": "my-job"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"job": "my-job"}, in.Labels)
}

func TestExpandTemplates_NotAllowed(t *testing.T) {
	type S struct {
		Path string `template:""`
	}
	in := S{Path: "${SECRET}"}
	err := ExpandTemplates(&in, map[string]string{})
	require.Error(t, err)
	assert.ErrorContains(t, err, `"SECRET" is not in the allowed list`)
}

func TestExpandTemplates_RejectsNonStruct(t *testing.T) {
	in := "${X}"
	err := ExpandTemplates(&in, map[string]string{"X": "y"})
	assert.ErrorContains(t, err, "expects *struct")
}

func TestExpandTemplates_ArchiveJob(t *testing.T) {
	job := v1.ArchiveJob{
		Kind:     v1.ArchiveJobKind,
		Metadata: v1.Metadata{Name: "${JOB_NAME}"},
		Spec: v1.ArchiveJobSpec{
			Tasks: []v1.Task{
				{
					ID: "logs",
					SevenZip: &v1.SevenZipTask{
						Inputs:  []string{"${LOG_DIR}/app.log"},
						Output:  "/backups/${JOB_NAME}.7z",
						Command: "${SEVEN_ZIP}",
					},
					Upload: &v1.UploadSpec{S3: &v1.S3UploadSpec{Bucket: "${BUCKET}", Prefix: "${JOB_NAME}"}},
				},
				{
					ID:      "restore",
					Extract: &v1.ExtractTask{Archive: "${LOG_DIR}/old.gz", Output: "${LOG_DIR}/old", Codec: "gzip"},
				},
			},
		},
	}

	err := ExpandTemplates(&job, map[string]string{
		"JOB_NAME":  "nightly",
		"LOG_DIR":   "/var/log",
		"SEVEN_ZIP": "7za",
		"BUCKET":    "archives",
	})
	require.NoError(t, err)

	assert.Equal(t, "${JOB_NAME}", job.Metadata.Name, "metadata is not templated")
	sz := job.Spec.Tasks[0].SevenZip
	assert.Equal(t, []string{"/var/log/app.log"}, sz.Inputs)
	assert.Equal(t, "/backups/nightly.7z", sz.Output)
	assert.Equal(t, "7za", sz.Command)
	assert.Equal(t, "archives", job.Spec.Tasks[0].Upload.S3.Bucket)
	assert.Equal(t, "nightly", job.Spec.Tasks[0].Upload.S3.Prefix)
	assert.Equal(t, "/var/log/old.gz", job.Spec.Tasks[1].Extract.Archive)
	assert.Equal(t, "/var/log/old", job.Spec.Tasks[1].Extract.Output)
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		variables map[string]string
		want      string
		wantErr   bool
	}{
		{name: "no references", value: "/plain/path", want: "/plain/path"},
		{name: "braced", value: "${A}-${B}", variables: map[string]string{"A": "1", "B": "2"}, want: "1-2"},
		{name: "bare", value: "$A/x", variables: map[string]string{"A": "1"}, want: "1/x"},
		{name: "missing", value: "${A}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.value, tt.variables)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
