// Package quill provides a lightweight, fluent SQL statement builder for Go.
// It assembles SELECT and INSERT statement text from chained configuration
// calls, with structured logging and OpenTelemetry tracing out of the box.
//
// Quill builds text only: it does not execute queries, manage connections, or
// bind parameters. Values are interpolated into the statement as literals
// without escaping, which is an explicit limitation of the format it renders,
// not an oversight. Never feed untrusted input to a builder without checking
// the result, for example with a Validator.
//
// Basic usage:
//
//	sql := quill.New("users").
//		Select("email", "name").
//		Where("active", true).
//		WhereOp("age", quill.OpGreaterOrEqual, 18).
//		OrderBy("created_at", quill.Desc).
//		Limit(25).
//		String()
package quill

import (
	"github.com/coregx/quill/internal/core"
	"github.com/coregx/quill/internal/logger"
	"github.com/coregx/quill/internal/security"
	"github.com/coregx/quill/internal/tracer"
)

type (
	// Statement accumulates clauses for one SQL statement and renders them on demand.
	Statement = core.Statement
	// Option is a functional option for configuring a Statement.
	Option = core.Option
	// Direction specifies the sort order of an ORDER BY term.
	Direction = core.Direction

	// Logger is the structured logging interface accepted by WithLogger.
	Logger = logger.Logger
	// Tracer is the tracing interface accepted by WithTracer.
	Tracer = tracer.Tracer
	// Validator checks rendered statements against dangerous patterns.
	Validator = security.Validator
	// ValidatorOption configures a Validator.
	ValidatorOption = security.ValidatorOption
)

// Sort directions.
const (
	Asc  = core.Asc
	Desc = core.Desc
)

// Comparison operators accepted by WhereOp.
const (
	OpEq             = core.OpEq
	OpNotEq          = core.OpNotEq
	OpGreaterThan    = core.OpGreaterThan
	OpLessThan       = core.OpLessThan
	OpGreaterOrEqual = core.OpGreaterOrEqual
	OpLessOrEqual    = core.OpLessOrEqual
)

// ErrInvalidOperator is returned when a filter uses a comparison operator
// outside the allowed set.
var ErrInvalidOperator = core.ErrInvalidOperator

// Re-export core functions.
var (
	New           = core.New
	WithLogger    = core.WithLogger
	WithTracer    = core.WithTracer
	WithValidator = core.WithValidator

	// Observability adapters
	NewSlogAdapter = logger.NewSlogAdapter
	NewOtelTracer  = tracer.NewOtelTracer

	// Statement validation
	NewValidator = security.NewValidator
	WithStrict   = security.WithStrict
)
