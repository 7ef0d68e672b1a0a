package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/infracollect/arcwrap/apis/v1"
)

func TestBuildVariables(t *testing.T) {
	job := v1.ArchiveJob{
		Metadata: v1.Metadata{
			Name: "test-job",
		},
	}

	t.Run("built-in variables are set", func(t *testing.T) {
		variables, err := BuildVariables(job, nil)
		require.NoError(t, err)

		assert.Equal(t, "test-job", variables["JOB_NAME"])

		_, err = time.Parse(ISO8601Basic, variables["JOB_DATE_ISO8601"])
		require.NoError(t, err, "JOB_DATE_ISO8601 should be valid ISO8601 basic format")

		_, err = time.Parse(time.RFC3339, variables["JOB_DATE_RFC3339"])
		require.NoError(t, err, "JOB_DATE_RFC3339 should be valid RFC3339 format")
	})

	t.Run("allowed env variables are included", func(t *testing.T) {
		t.Setenv("BACKUP_DIR", "/srv/backups")

		variables, err := BuildVariables(job, []string{"BACKUP_DIR"})
		require.NoError(t, err)

		assert.Equal(t, "/srv/backups", variables["BACKUP_DIR"])
	})

	t.Run("error when allowed env variables are not set", func(t *testing.T) {
		_, err := BuildVariables(job, []string{"UNSET_VAR_ONE", "UNSET_VAR_TWO"})
		require.Error(t, err)
		assert.ErrorContains(t, err, "UNSET_VAR_ONE")
		assert.ErrorContains(t, err, "UNSET_VAR_TWO")
		assert.ErrorContains(t, err, "is not set")
	})
}
