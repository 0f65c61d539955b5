package v1

import (
	"fmt"
	"os"
)

const (
	// DefaultRequestsPerHour is the job-query budget used when the config
	// doesn't set one. GitHub allows 5000 authenticated requests per hour;
	// we stay well under it so other consumers of the same token survive.
	DefaultRequestsPerHour = 1000

	// DefaultDataset is the BigQuery dataset the two tables live in.
	DefaultDataset = "workflows_native"
)

// EnvVar holds a value either inline or by reference to an environment
// variable, so secrets never appear in config files.
type EnvVar struct {
	Value     string        `yaml:"value,omitempty" json:"value,omitempty"`
	ValueFrom *EnvVarSource `yaml:"valueFrom,omitempty" json:"valueFrom,omitempty"`
}

type EnvVarSource struct {
	Env string `yaml:"env,omitempty" json:"env,omitempty"`
}

func (e EnvVar) IsEmpty() bool {
	return e.Value == "" && (e.ValueFrom == nil || e.ValueFrom.Env == "")
}

// Resolve returns the inline value or reads the referenced environment
// variable. A reference to an unset variable is an error rather than an
// empty string so misconfiguration fails before any network call.
func (e EnvVar) Resolve() (string, error) {
	if e.Value != "" {
		return e.Value, nil
	}
	if e.ValueFrom != nil && e.ValueFrom.Env != "" {
		val, ok := os.LookupEnv(e.ValueFrom.Env)
		if !ok || val == "" {
			return "", fmt.Errorf("environment variable %s is not set", e.ValueFrom.Env)
		}
		return val, nil
	}
	return "", fmt.Errorf("no value or valueFrom specified")
}

// GitHubSource identifies the repository whose workflow runs are exported.
type GitHubSource struct {
	Owner               string `yaml:"owner" json:"owner"`
	Repository          string `yaml:"repository" json:"repository"`
	PersonalAccessToken EnvVar `yaml:"personalAccessToken" json:"personalAccessToken"`
	// RequestsPerHour bounds the rate of job-list queries
	RequestsPerHour int `yaml:"requestsPerHour,omitempty" json:"requestsPerHour,omitempty"`
}

// Quota returns the configured hourly request budget, defaulted.
func (g GitHubSource) Quota() int {
	if g.RequestsPerHour <= 0 {
		return DefaultRequestsPerHour
	}
	return g.RequestsPerHour
}

// GCPTarget is the bucket and dataset the export lands in. Credentials are
// optional; application default credentials are used when absent.
type GCPTarget struct {
	Project     string `yaml:"project" json:"project"`
	Bucket      string `yaml:"bucket" json:"bucket"`
	Dataset     string `yaml:"dataset,omitempty" json:"dataset,omitempty"`
	Credentials EnvVar `yaml:"credentials,omitempty" json:"credentials,omitempty"`
}

func (g GCPTarget) DatasetOrDefault() string {
	if g.Dataset == "" {
		return DefaultDataset
	}
	return g.Dataset
}

type Output struct {
	// Dir is the local scratch directory for the NDJSON files
	Dir string `yaml:"dir,omitempty" json:"dir,omitempty"`
}

// ExportConfig is the root of the YAML config file.
type ExportConfig struct {
	GitHub GitHubSource `yaml:"github" json:"github"`
	GCP    GCPTarget    `yaml:"gcp" json:"gcp"`
	Output Output       `yaml:"output,omitempty" json:"output,omitempty"`
}

func (c ExportConfig) Validate() error {
	if c.GitHub.Owner == "" || c.GitHub.Repository == "" {
		return fmt.Errorf("github.owner and github.repository are required")
	}
	if c.GitHub.PersonalAccessToken.IsEmpty() {
		return fmt.Errorf("github.personalAccessToken is required")
	}
	if c.GCP.Project == "" {
		return fmt.Errorf("gcp.project is required")
	}
	if c.GCP.Bucket == "" {
		return fmt.Errorf("gcp.bucket is required")
	}
	return nil
}
