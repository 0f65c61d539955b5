package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnvVarResolve(t *testing.T) {
	t.Setenv("TEST_TOKEN", "ghp_xxx")

	val, err := EnvVar{Value: "inline"}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "inline", val)

	val, err = EnvVar{ValueFrom: &EnvVarSource{Env: "TEST_TOKEN"}}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "ghp_xxx", val)

	_, err = EnvVar{ValueFrom: &EnvVarSource{Env: "TEST_TOKEN_MISSING"}}.Resolve()
	assert.ErrorContains(t, err, "TEST_TOKEN_MISSING")

	_, err = EnvVar{}.Resolve()
	assert.Error(t, err)
}

func TestQuotaDefault(t *testing.T) {
	assert.Equal(t, 1000, GitHubSource{}.Quota())
	assert.Equal(t, 500, GitHubSource{RequestsPerHour: 500}.Quota())
}

func TestDatasetDefault(t *testing.T) {
	assert.Equal(t, "workflows_native", GCPTarget{}.DatasetOrDefault())
	assert.Equal(t, "ci_metrics", GCPTarget{Dataset: "ci_metrics"}.DatasetOrDefault())
}

func TestExportConfigYAML(t *testing.T) {
	raw := `
github:
  owner: flanksource
  repository: config-db
  personalAccessToken:
    valueFrom:
      env: GITHUB_TOKEN
  requestsPerHour: 1000
gcp:
  project: my-project
  bucket: my-bucket
  credentials:
    valueFrom:
      env: GOOGLE_CREDENTIALS_JSON
output:
  dir: /tmp/workflow-db
`
	var config ExportConfig
	require.NoError(t, yaml.Unmarshal([]byte(raw), &config))
	require.NoError(t, config.Validate())

	assert.Equal(t, "flanksource", config.GitHub.Owner)
	assert.Equal(t, "GITHUB_TOKEN", config.GitHub.PersonalAccessToken.ValueFrom.Env)
	assert.Equal(t, 1000, config.GitHub.Quota())
	assert.Equal(t, "workflows_native", config.GCP.DatasetOrDefault())
	assert.Equal(t, "/tmp/workflow-db", config.Output.Dir)
}

func TestExportConfigValidate(t *testing.T) {
	valid := ExportConfig{
		GitHub: GitHubSource{
			Owner:               "flanksource",
			Repository:          "config-db",
			PersonalAccessToken: EnvVar{Value: "token"},
		},
		GCP: GCPTarget{Project: "p", Bucket: "b"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*ExportConfig)
		substr string
	}{
		{"missing owner", func(c *ExportConfig) { c.GitHub.Owner = "" }, "github.owner"},
		{"missing repo", func(c *ExportConfig) { c.GitHub.Repository = "" }, "github.repository"},
		{"missing token", func(c *ExportConfig) { c.GitHub.PersonalAccessToken = EnvVar{} }, "personalAccessToken"},
		{"missing project", func(c *ExportConfig) { c.GCP.Project = "" }, "gcp.project"},
		{"missing bucket", func(c *ExportConfig) { c.GCP.Bucket = "" }, "gcp.bucket"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := valid
			tc.mutate(&config)
			assert.ErrorContains(t, config.Validate(), tc.substr)
		})
	}
}
