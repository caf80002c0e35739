// Package baseline suppresses known differences.
//
// A baseline file lists accepted differences by rule and identity key:
//
//	version: "1"
//	suppressions:
//	  - rule: MemberMustExist
//	    key: M:Acme.Widget.Reset()
//	  - rule: CannotReduceVisibility
//	    key: M:Acme.Widget.Render(System.Int32)
//	    message: "Visibility of method ..."   # optional, must match exactly
//
// Entries that suppress nothing are stale; callers may report them.
package baseline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"apicompat/internal/diagnostic"
	"apicompat/internal/engine"
)

// CurrentVersion is written to new baseline files.
const CurrentVersion = "1"

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var validate = validator.New()

// File is a parsed baseline.
type File struct {
	Version      string  `yaml:"version,omitempty"`
	Suppressions []Entry `yaml:"suppressions"      validate:"dive"`
}

// Entry suppresses the differences of one rule on one element.
type Entry struct {
	Rule    string `yaml:"rule"              validate:"required"`
	Key     string `yaml:"key"               validate:"required"`
	Message string `yaml:"message,omitempty"`
}

// Matches reports whether e suppresses d.
func (e Entry) Matches(d engine.Difference) bool {
	return e.Rule == d.Rule && e.Key == d.Key && (e.Message == "" || e.Message == d.Message)
}

// LoadFile reads and validates a baseline file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse parses and validates baseline YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse baseline YAML: %w", err)
	}

	if f.Version == "" {
		f.Version = CurrentVersion
	}

	if err := validate.Struct(&f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid baseline entry %s: %s is required", verrs[0].Namespace(), verrs[0].Field())
		}

		return nil, fmt.Errorf("invalid baseline: %w", err)
	}

	return &f, nil
}

// Merge concatenates the entries of several files.
func Merge(files ...*File) *File {
	out := &File{Version: CurrentVersion}

	for _, f := range files {
		if f != nil {
			out.Suppressions = append(out.Suppressions, f.Suppressions...)
		}
	}

	return out
}

// FromDifferences builds a baseline accepting every difference.
func FromDifferences(diffs []engine.Difference) *File {
	f := &File{Version: CurrentVersion}

	for _, d := range diffs {
		e := Entry{Rule: d.Rule, Key: d.Key}
		if !slices.Contains(f.Suppressions, e) {
			f.Suppressions = append(f.Suppressions, e)
		}
	}

	return f
}

// Marshal serializes the baseline to YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes the baseline to path.
func (f *File) WriteFile(path string) error {
	data, err := f.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating baseline directory: %w", err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}

	return nil
}

// Outcome is the effect of a baseline on a list of differences.
type Outcome struct {
	Kept       []engine.Difference
	Suppressed []engine.Difference
	// Unused lists entries that matched no difference, in file order.
	Unused []Entry
}

// Apply splits diffs into kept and suppressed differences, preserving order.
func (f *File) Apply(diffs []engine.Difference) Outcome {
	var out Outcome

	used := make([]bool, len(f.Suppressions))

	for _, d := range diffs {
		suppressed := false

		for i, e := range f.Suppressions {
			if e.Matches(d) {
				used[i] = true
				suppressed = true
			}
		}

		if suppressed {
			out.Suppressed = append(out.Suppressed, d)
		} else {
			out.Kept = append(out.Kept, d)
		}
	}

	for i, e := range f.Suppressions {
		if !used[i] {
			out.Unused = append(out.Unused, e)
		}
	}

	return out
}

// StaleDiagnostics reports every unused entry as a warning.
func (o Outcome) StaleDiagnostics() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	for _, e := range o.Unused {
		d.AddWarning(diagnostic.CodeStaleBaseline,
			fmt.Sprintf("baseline entry for rule %s matches no difference", e.Rule), e.Key, diagnostic.NoSide)
	}

	return d
}
