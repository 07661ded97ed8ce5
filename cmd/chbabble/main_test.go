package main

import "testing"

func TestGetVersionString(t *testing.T) {
	origVersion := version
	origCommit := commit
	origBuildDate := buildDate
	defer func() {
		version = origVersion
		commit = origCommit
		buildDate = origBuildDate
	}()

	tests := []struct {
		name      string
		version   string
		commit    string
		buildDate string
		expected  string
	}{
		{
			name:      "dev build without metadata",
			version:   "dev",
			commit:    "unknown",
			buildDate: "unknown",
			expected:  "dev",
		},
		{
			name:      "release build with metadata",
			version:   "1.2.0",
			commit:    "abc1234",
			buildDate: "2025-06-01",
			expected:  "1.2.0 (commit: abc1234, built: 2025-06-01)",
		},
		{
			name:      "commit without build date",
			version:   "1.2.0",
			commit:    "abc1234",
			buildDate: "unknown",
			expected:  "1.2.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version = tt.version
			commit = tt.commit
			buildDate = tt.buildDate

			if got := getVersionString(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRootCommandFlags(t *testing.T) {
	for _, flag := range []string{
		"host", "port", "user", "password", "dbname",
		"include-tables", "ignore-tables",
		"sample-rows", "indexes", "model",
	} {
		if rootCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag --%s to be registered", flag)
		}
	}
}
