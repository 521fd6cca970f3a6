package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `
timezone: UTC
free_weekdays: [saturday, sunday]
holidays:
  - "2024-03-05"
log:
  level: error
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func execute(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", writeConfig(t, config)}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"add one", []string{"add", "1", "--from", "2024-03-01"}, "2024-03-04\n"},
		{"add skips holiday", []string{"add", "2", "--from", "2024-03-01"}, "2024-03-06\n"},
		{"add negative", []string{"add", "--from", "2024-03-04", "--", "-1"}, "2024-03-01\n"},
		{"add include today", []string{"add", "1", "--from", "2024-03-04", "--strategy", "include"}, "2024-03-04\n"},
		{"sub", []string{"sub", "1", "--from", "2024-03-06"}, "2024-03-04\n"},
		{"classify", []string{"classify", "2024-03-02"}, "2024-03-02  Saturday   free_weekday\n"},
		{"range", []string{"range", "2024-03-01", "2024-03-10"}, "Business days in 2024-03-01..2024-03-10: 5\n"},
		{"inverted range", []string{"range", "2024-03-10..2024-03-01"}, "Business days in 2024-03-10..2024-03-01: 0\n"},
		{"weekend", []string{"weekend"}, "Weekend:  Saturday, Sunday\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, testConfig, tt.args...)
			if err != nil {
				t.Fatalf("%v error = %v", tt.args, err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("%v output = %q, want it to contain %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestRangeCmd_ListNonWorking(t *testing.T) {
	got, err := execute(t, testConfig, "range", "2024-03-01..2024-03-10", "--list", "non-working")
	if err != nil {
		t.Fatalf("range error = %v", err)
	}

	for _, want := range []string{
		"2024-03-02  Saturday   free_weekday",
		"2024-03-05  Tuesday    holiday",
		"2024-03-10  Sunday     free_weekday",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("range output = %q, want it to contain %q", got, want)
		}
	}
	if strings.Contains(got, "2024-03-04") {
		t.Errorf("range output = %q lists a business day", got)
	}
}

func TestMonthCmd(t *testing.T) {
	got, err := execute(t, testConfig, "month", "2024", "3")
	if err != nil {
		t.Fatalf("month error = %v", err)
	}

	for _, want := range []string{"March 2024", "Business days:  20", "Holidays:       1", "Free weekdays:  10"} {
		if !strings.Contains(got, want) {
			t.Errorf("month output = %q, want it to contain %q", got, want)
		}
	}
}

func TestWeekendCmd_FromLocale(t *testing.T) {
	got, err := execute(t, "timezone: UTC\nlocale: ar-SA\nlog:\n  level: error\n", "weekend")
	if err != nil {
		t.Fatalf("weekend error = %v", err)
	}
	if !strings.Contains(got, "Weekend:  Friday, Saturday") {
		t.Errorf("weekend output = %q, want Friday, Saturday", got)
	}
}

func TestRuleFileSource(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "rules.txt")
	if err := os.WriteFile(rules, []byte("2024-03-04 freeday Bridge\n"), 0o644); err != nil {
		t.Fatalf("failed to write rules: %v", err)
	}

	config := testConfig + "sources:\n  file: " + rules + "\n"
	got, err := execute(t, config, "add", "1", "--from", "2024-03-01")
	if err != nil {
		t.Fatalf("add error = %v", err)
	}
	if got != "2024-03-06\n" {
		t.Errorf("add output = %q, want 2024-03-06", got)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"non-numeric N", []string{"add", "x"}},
		{"bad strategy", []string{"add", "1", "--strategy", "sometimes"}},
		{"bad date", []string{"classify", "someday"}},
		{"bad list", []string{"range", "2024-03-01", "2024-03-10", "--list", "weekends"}},
		{"bad month", []string{"month", "2024", "13"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, testConfig, tt.args...); err == nil {
				t.Errorf("%v expected error, got nil", tt.args)
			}
		})
	}
}
