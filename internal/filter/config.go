package filter

import (
	"errors"
	"fmt"
	"strings"

	"apicompat/internal/symbol"
)

var (
	// ErrNoAccessibilities is returned when the allowed accessibility set is empty.
	ErrNoAccessibilities = errors.New("allowed accessibilities must not be empty")
	// ErrInvalidAccessibilities is returned when the set holds unknown bits.
	ErrInvalidAccessibilities = errors.New("allowed accessibilities contain unknown values")
)

// Config holds the options that shape the analyzed surface.
type Config struct {
	// ExcludeAttributes drops every attribute from comparison.
	ExcludeAttributes bool
	// IncludeForwardedTypes keeps types re-exported from another library.
	IncludeForwardedTypes bool
	// AllowedAccessibilities lists the visibilities that are part of the surface.
	// Protected and ProtectedOrInternal members are visible regardless.
	AllowedAccessibilities symbol.VisibilitySet
	// AlwaysDiffMembers maps members of wholly added or removed types.
	AlwaysDiffMembers bool
	// ExcludeCompilerGenerated drops compiler-generated types and members,
	// except property and event accessors.
	ExcludeCompilerGenerated bool
	// IgnoredAttributes extends the built-in list of skipped attribute types.
	IgnoredAttributes []string
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		ExcludeAttributes:        true,
		IncludeForwardedTypes:    false,
		AllowedAccessibilities:   symbol.DefaultVisibilities,
		AlwaysDiffMembers:        false,
		ExcludeCompilerGenerated: true,
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.AllowedAccessibilities.IsEmpty() {
		return ErrNoAccessibilities
	}

	if !c.AllowedAccessibilities.Valid() {
		return fmt.Errorf("%w: %#x", ErrInvalidAccessibilities, uint8(c.AllowedAccessibilities))
	}

	for i, name := range c.IgnoredAttributes {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("ignored attribute %d: empty type name", i)
		}
	}

	return nil
}

// skippedAttributes are attribute types that never take part in a comparison.
var skippedAttributes = []string{
	"System.AttributeUsageAttribute",
	"System.ComponentModel.DefaultEventAttribute",
	"System.ComponentModel.DefaultPropertyAttribute",
	"System.ComponentModel.DesignerAttribute",
	"System.ComponentModel.DesignerCategoryAttribute",
	"System.ComponentModel.DesignerSerializationVisibilityAttribute",
	"System.ComponentModel.DesignTimeVisibleAttribute",
	"System.ComponentModel.EditorAttribute",
	"System.ComponentModel.EditorBrowsableAttribute",
	"System.Diagnostics.CodeAnalysis.DynamicallyAccessedMembersAttribute",
	"System.Diagnostics.CodeAnalysis.RequiresUnreferencedCodeAttribute",
	"System.Diagnostics.CodeAnalysis.UnconditionalSuppressMessageAttribute",
	"System.Diagnostics.DebuggerDisplayAttribute",
	"System.Diagnostics.DebuggerHiddenAttribute",
	"System.Diagnostics.DebuggerStepThroughAttribute",
	"System.Runtime.CompilerServices.AsyncStateMachineAttribute",
	"System.Runtime.CompilerServices.CompilerFeatureRequiredAttribute",
	"System.Runtime.CompilerServices.CompilerGeneratedAttribute",
	"System.Runtime.CompilerServices.InterpolatedStringHandlerAttribute",
	"System.Runtime.CompilerServices.NullableAttribute",
	"System.Runtime.CompilerServices.NullableContextAttribute",
	"System.Runtime.InteropServices.StructLayoutAttribute",
}
