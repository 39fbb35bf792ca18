package gateways

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleTargetTxt = `#
#  Copyright (c) 2006 - 2019, Intel Corporation. All rights reserved.<BR>
#
ACTIVE_PLATFORM       = EmulatorPkg/EmulatorPkg.dsc
TARGET                = DEBUG
TARGET_ARCH           = IA32
TOOL_CHAIN_CONF       = Conf/tools_def.txt
TOOL_CHAIN_TAG        = VS2015x86
BUILD_RULE_CONF = Conf/build_rule.txt
`

func writeTargetTxt(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Conf", "target.txt")
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("Failed to create Conf dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write target.txt: %v", err)
	}
	return path
}

func TestTargetConfig_Substitute(t *testing.T) {
	tests := []struct {
		name    string
		content string
		find    string
		replace string
		want    string
	}{
		{"single occurrence", "TARGET = DEBUG\n", "DEBUG", "RELEASE", "TARGET = RELEASE\n"},
		{"every occurrence", "DEBUG DEBUG\nDEBUG", "DEBUG", "NOOPT", "NOOPT NOOPT\nNOOPT"},
		{"no occurrence", "TARGET = RELEASE\n", "DEBUG", "NOOPT", "TARGET = RELEASE\n"},
		{"substring match", "DEBUGGER", "DEBUG", "X", "XGER"},
		{"empty replacement", "TARGET_ARCH = IA32\n", "IA32", "", "TARGET_ARCH = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTargetTxt(t, tt.content)

			if err := NewTargetConfig().Substitute(path, tt.find, tt.replace); err != nil {
				t.Fatalf("Substitute() error = %v", err)
			}

			got, _ := os.ReadFile(path)
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("Substitute() content mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTargetConfig_SubstituteIdempotent(t *testing.T) {
	path := writeTargetTxt(t, sampleTargetTxt)
	tc := NewTargetConfig()

	if err := tc.Substitute(path, "VS2015x86", "GCC5"); err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	once, _ := os.ReadFile(path)

	if err := tc.Substitute(path, "VS2015x86", "GCC5"); err != nil {
		t.Fatalf("second Substitute() error = %v", err)
	}
	twice, _ := os.ReadFile(path)

	if string(once) != string(twice) {
		t.Error("second substitution without occurrences should be a no-op")
	}
	if strings.Contains(string(once), "VS2015x86") {
		t.Error("placeholder still present after substitution")
	}
}

func TestTargetConfig_SubstituteKeepsMode(t *testing.T) {
	path := writeTargetTxt(t, sampleTargetTxt)
	before, _ := os.Stat(path)

	if err := NewTargetConfig().Substitute(path, "IA32", "X64"); err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}

	after, _ := os.Stat(path)
	if before.Mode() != after.Mode() {
		t.Errorf("mode changed from %v to %v", before.Mode(), after.Mode())
	}
}

func TestTargetConfig_SubstituteMissingFile(t *testing.T) {
	err := NewTargetConfig().Substitute(filepath.Join(t.TempDir(), "missing.txt"), "DEBUG", "RELEASE")
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}

func TestTargetConfig_ReadEffective(t *testing.T) {
	path := writeTargetTxt(t, sampleTargetTxt)

	got, err := NewTargetConfig().ReadEffective(path)
	if err != nil {
		t.Fatalf("ReadEffective() error = %v", err)
	}

	want := map[string]string{
		"ACTIVE_PLATFORM": "EmulatorPkg/EmulatorPkg.dsc",
		"TARGET":          "DEBUG",
		"TARGET_ARCH":     "IA32",
		"TOOL_CHAIN_CONF": "Conf/tools_def.txt",
		"TOOL_CHAIN_TAG":  "VS2015x86",
		"BUILD_RULE_CONF": "Conf/build_rule.txt",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadEffective() mismatch (-want +got):\n%s", diff)
	}
}

func TestTargetConfig_ReadEffectiveMissingFile(t *testing.T) {
	got, err := NewTargetConfig().ReadEffective(filepath.Join(t.TempDir(), "target.txt"))
	if err != nil {
		t.Fatalf("ReadEffective() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadEffective() = %v, want empty map", got)
	}
}
