package runner

import (
	"errors"
	"fmt"
	"os"
	"time"

	v1 "github.com/infracollect/arcwrap/apis/v1"
)

// ISO8601Basic is a file-name-safe timestamp format without colons.
const ISO8601Basic = "20060102T150405Z"

// BuildVariables returns the variables available to job templates: the
// built-in JOB_* values plus every environment variable named in allowedEnv.
func BuildVariables(job v1.ArchiveJob, allowedEnv []string) (map[string]string, error) {
	date := time.Now().UTC()
	variables := map[string]string{
		"JOB_NAME":         job.Metadata.Name,
		"JOB_DATE_ISO8601": date.Format(ISO8601Basic),
		"JOB_DATE_RFC3339": date.Format(time.RFC3339),
	}

	var errs error
	for _, envName := range allowedEnv {
		val, ok := os.LookupEnv(envName)
		if !ok {
			errs = errors.Join(errs, fmt.Errorf("environment variable %q is not set", envName))
			continue
		}
		variables[envName] = val
	}

	if errs != nil {
		return nil, errs
	}

	return variables, nil
}
