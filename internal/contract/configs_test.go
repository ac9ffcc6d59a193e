package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beastmode/notable/schema"
)

// validInput returns a raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DataDir:      "./data",
		Limit:        25,
		Workers:      3,
		Output:       "text",
		Color:        "yes",
		StoreBackend: "sqlite",
		Algorithm:    "linear",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	input := validInput()
	input.DataDir = ""
	input.Algorithm = ""

	var cfg Config
	require.NoError(t, ProcessAndValidate(&cfg, input))

	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, GetDefaultModelsDir(), cfg.ModelsDir)
	assert.Equal(t, schema.LinearAlgorithm, cfg.Algorithm)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultFeedbackLimit, cfg.FeedbackLimit)
	assert.Equal(t, DefaultFeedbackTarget, cfg.FeedbackTarget)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConfigRawInput)
		wantErr string
	}{
		{
			name:    "zero limit",
			mutate:  func(in *ConfigRawInput) { in.Limit = 0 },
			wantErr: "limit must be greater than 0",
		},
		{
			name:    "limit over max",
			mutate:  func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			wantErr: "limit must be greater than 0",
		},
		{
			name:    "zero workers",
			mutate:  func(in *ConfigRawInput) { in.Workers = 0 },
			wantErr: "workers must be greater than 0",
		},
		{
			name:    "bad output mode",
			mutate:  func(in *ConfigRawInput) { in.Output = "xml" },
			wantErr: "invalid output format",
		},
		{
			name:    "bad color value",
			mutate:  func(in *ConfigRawInput) { in.Color = "maybe" },
			wantErr: "invalid --color value",
		},
		{
			name:    "bad algorithm",
			mutate:  func(in *ConfigRawInput) { in.Algorithm = "svm" },
			wantErr: "invalid algorithm",
		},
		{
			name:    "negative learning rate",
			mutate:  func(in *ConfigRawInput) { in.LearningRate = -0.1 },
			wantErr: "learning-rate cannot be negative",
		},
		{
			name:    "negative epochs",
			mutate:  func(in *ConfigRawInput) { in.Epochs = -1 },
			wantErr: "epochs cannot be negative",
		},
		{
			name:    "bad store backend",
			mutate:  func(in *ConfigRawInput) { in.StoreBackend = "oracle" },
			wantErr: "invalid store backend",
		},
		{
			name:    "mysql without conn string",
			mutate:  func(in *ConfigRawInput) { in.StoreBackend = "mysql" },
			wantErr: "store-db-connect is required",
		},
		{
			name:    "negative feedback target",
			mutate:  func(in *ConfigRawInput) { in.FeedbackTarget = -5 },
			wantErr: "feedback-target cannot be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			var cfg Config
			err := ProcessAndValidate(&cfg, input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProcessAndValidateCaseInsensitive(t *testing.T) {
	input := validInput()
	input.Output = "JSON"
	input.Algorithm = "Random-Forest"
	input.StoreBackend = "SQLite"

	var cfg Config
	require.NoError(t, ProcessAndValidate(&cfg, input))
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, schema.RandomForestAlgorithm, cfg.Algorithm)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty ok", schema.SQLiteBackend, "", false},
		{"none empty ok", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/notable", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/notable", true},
		{"mysql missing db", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=notable", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=notable", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
