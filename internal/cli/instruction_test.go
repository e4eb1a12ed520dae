package cli

import (
	"testing"

	archerr "github.com/matzehuels/archiva-cli/pkg/errors"
)

func TestParseInstruction(t *testing.T) {
	tests := []struct {
		in   string
		want Instruction
	}{
		{
			in:   "versionsList:com.organization.mydivision.MyPackage",
			want: Instruction{Kind: KindVersionsList, Group: "com.organization.mydivision", Name: "MyPackage"},
		},
		{
			in:   "  versionsList:a.B \n",
			want: Instruction{Kind: KindVersionsList, Group: "a", Name: "B"},
		},
		{
			in:   "downloadInfos:com.example.lib:1.2.3-SNAPSHOT",
			want: Instruction{Kind: KindDownloadInfos, Group: "com.example", Name: "lib", Version: "1.2.3-SNAPSHOT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInstruction(tt.in)
			if err != nil {
				t.Fatalf("ParseInstruction(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseInstruction(%q) = %+v, want %+v", tt.in, got, tt.want)
			}

			again, err := ParseInstruction(got.String())
			if err != nil || again != got {
				t.Errorf("String() = %q does not round-trip", got.String())
			}
		})
	}
}

func TestParseInstructionInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"unknown verb", "list:a.B"},
		{"verb only", "versionsList"},
		{"missing name", "versionsList:com"},
		{"empty group", "versionsList:.B"},
		{"empty name", "versionsList:a."},
		{"extra segment", "versionsList:a.B:1.0"},
		{"missing version", "downloadInfos:a.B"},
		{"empty version", "downloadInfos:a.B:"},
		{"too many segments", "downloadInfos:a.B:1:2"},
		{"wrong case", "VersionsList:a.B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInstruction(tt.in)
			if !archerr.Is(err, archerr.ErrCodeInvalidInstruction) {
				t.Errorf("ParseInstruction(%q) error = %v, want INVALID_INSTRUCTION", tt.in, err)
			}
		})
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		in   Instruction
		want string
	}{
		{Instruction{Kind: KindVersionsList, Group: "a.b", Name: "C"}, "versionsList:a.b.C"},
		{Instruction{Kind: KindDownloadInfos, Group: "a", Name: "B", Version: "1"}, "downloadInfos:a.B:1"},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
