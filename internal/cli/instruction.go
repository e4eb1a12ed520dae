package cli

import (
	"strings"

	archerr "github.com/matzehuels/archiva-cli/pkg/errors"
)

// Kind names the query an instruction runs.
type Kind string

// Supported instruction kinds.
const (
	KindVersionsList  Kind = "versionsList"
	KindDownloadInfos Kind = "downloadInfos"
)

// Instruction is one parsed query, e.g. "versionsList:com.example.lib".
type Instruction struct {
	Kind    Kind
	Group   string
	Name    string
	Version string // downloadInfos only
}

// ParseInstruction parses
//
//	versionsList:{group}.{name}
//	downloadInfos:{group}.{name}:{version}
//
// The coordinate is split on its last '.', so the group may contain dots.
func ParseInstruction(s string) (Instruction, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")

	var in Instruction
	switch Kind(parts[0]) {
	case KindVersionsList:
		if len(parts) != 2 {
			return in, invalidInstruction(s, "expected versionsList:{group}.{name}")
		}
	case KindDownloadInfos:
		if len(parts) != 3 {
			return in, invalidInstruction(s, "expected downloadInfos:{group}.{name}:{version}")
		}
		if parts[2] == "" {
			return in, invalidInstruction(s, "empty version")
		}
		in.Version = parts[2]
	default:
		return in, invalidInstruction(s, "unknown command %q", parts[0])
	}
	in.Kind = Kind(parts[0])

	i := strings.LastIndex(parts[1], ".")
	if i <= 0 || i == len(parts[1])-1 {
		return Instruction{}, invalidInstruction(s, "package must be {group}.{name}, got %q", parts[1])
	}
	in.Group, in.Name = parts[1][:i], parts[1][i+1:]
	return in, nil
}

// String returns the instruction in the form ParseInstruction accepts.
func (in Instruction) String() string {
	s := string(in.Kind) + ":" + in.Group + "." + in.Name
	if in.Kind == KindDownloadInfos {
		s += ":" + in.Version
	}
	return s
}

func invalidInstruction(s, format string, args ...any) error {
	return archerr.New(archerr.ErrCodeInvalidInstruction, "%q: "+format, append([]any{s}, args...)...)
}
