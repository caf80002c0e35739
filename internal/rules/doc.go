// Package rules defines the difference rule contract, the severity model and
// the built-in compatibility rules.
//
// A Rule inspects one mapping node and returns zero or more findings. Rules
// are stateless and supplied as an explicit ordered Set; a Predicate over
// rule metadata selects which of them run.
//
// Built-in rules, in Default order:
//
//	TypeMustExist              namespace or type missing on a side      Removed
//	MemberMustExist            member missing on a side                 Removed
//	ParameterTypeCannotChange  method replaced by a same-name overload  Changed (advisory)
//	CannotReduceVisibility     element became less accessible           Incompatible
//	CannotAddAttribute         attribute added on a side                Incompatible
//
// Extended adds ElementAdded, which reports elements missing on the
// baseline as Added.
package rules
