// Copyright (c) 2025 COREGX. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package core implements statement assembly for Quill: clause storage,
// literal conversion, operator validation, and serialization of the
// accumulated state into SQL text.
package core

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/coregx/quill/internal/logger"
	"github.com/coregx/quill/internal/security"
	"github.com/coregx/quill/internal/tracer"
)

// Direction specifies the sort order of an ORDER BY term.
type Direction string

// Sort directions accepted by OrderBy.
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Comparison operators accepted by WhereOp.
const (
	OpEq             = "="
	OpNotEq          = "!="
	OpGreaterThan    = ">"
	OpLessThan       = "<"
	OpGreaterOrEqual = ">="
	OpLessOrEqual    = "<="
)

// allowedOperators is the closed set of filter operators.
var allowedOperators = map[string]bool{
	OpEq:             true,
	OpNotEq:          true,
	OpGreaterThan:    true,
	OpLessThan:       true,
	OpGreaterOrEqual: true,
	OpLessOrEqual:    true,
}

// filter is a single WHERE predicate. The value is stored in its rendered
// literal form, converted at insertion time.
type filter struct {
	field string
	op    string
	value literal
}

// orderTerm is a single ORDER BY term.
type orderTerm struct {
	field string
	dir   Direction
}

// Statement accumulates clauses for exactly one SQL statement and renders
// them on demand. A Statement is mutable, chainable, and single-statement
// scoped: build one, render it, discard it. It is not safe for concurrent
// use; callers sharing a Statement across goroutines must serialize access.
type Statement struct {
	table   string
	columns []string
	filters []filter
	orders  []orderTerm

	limit    int
	hasLimit bool
	offset   int

	insert map[string]interface{}

	err error

	logger    logger.Logger
	sanitizer *logger.Sanitizer
	tracer    tracer.Tracer
	validator *security.Validator
	ctx       context.Context
}

// Option is a functional option for configuring a Statement.
type Option func(*Statement)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *Statement) {
		s.logger = l
	}
}

// WithTracer sets the tracer used to instrument statement builds.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Statement) {
		s.tracer = t
	}
}

// WithValidator sets a security validator checked against the rendered
// statement by Build.
func WithValidator(v *security.Validator) Option {
	return func(s *Statement) {
		s.validator = v
	}
}

// New creates a Statement bound to the given target table.
// The table name is stored verbatim; identifier quoting and escaping are the
// caller's responsibility.
func New(table string, opts ...Option) *Statement {
	s := &Statement{
		table:     table,
		logger:    &logger.NoopLogger{},
		sanitizer: logger.NewSanitizer(nil),
		tracer:    &tracer.NoopTracer{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithContext sets the context used for tracing spans started by Build.
func (s *Statement) WithContext(ctx context.Context) *Statement {
	s.ctx = ctx
	return s
}

// Select adds one or more projection columns.
// Columns already present are ignored; first-appearance order is kept.
// With no selected columns the statement projects *.
func (s *Statement) Select(columns ...string) *Statement {
	for _, col := range columns {
		if s.hasColumn(col) {
			continue
		}
		s.columns = append(s.columns, col)
	}
	return s
}

func (s *Statement) hasColumn(col string) bool {
	for _, c := range s.columns {
		if c == col {
			return true
		}
	}
	return false
}

// Where appends an equality predicate to the WHERE clause.
// It is shorthand for WhereOp(field, OpEq, value).
func (s *Statement) Where(field string, value interface{}) *Statement {
	return s.WhereOp(field, OpEq, value)
}

// WhereOp appends a predicate with an explicit comparison operator.
//
// op must be one of =, !=, >, <, >=, <=. An operator outside that set mutates
// nothing: the call records ErrInvalidOperator (visible through Err and
// returned by Build) and the statement stays chainable.
//
// The value is converted to its literal text immediately; values outside the
// supported scalar set (string, number, boolean) render as empty text.
func (s *Statement) WhereOp(field, op string, value interface{}) *Statement {
	if !allowedOperators[op] {
		s.logger.Debug("filter rejected", "field", field, "op", op)
		s.fail(ErrInvalidOperator)
		return s
	}

	lit := newLiteral(value)
	if lit.kind == literalInvalid {
		s.logger.Debug("unsupported filter value type", "field", field)
	}

	s.filters = append(s.filters, filter{field: field, op: op, value: lit})
	return s
}

// OrderBy appends a sort term. The direction is optional and defaults to
// ascending; unrecognized directions normalize to ascending. Terms render in
// the order they were added.
func (s *Statement) OrderBy(field string, dir ...Direction) *Statement {
	d := Asc
	if len(dir) > 0 && Direction(strings.ToUpper(string(dir[0]))) == Desc {
		d = Desc
	}
	s.orders = append(s.orders, orderTerm{field: field, dir: d})
	return s
}

// Limit sets the maximum row count. Negative values are ignored; repeated
// calls overwrite (last write wins). A limit of zero is stored but emits no
// clause.
func (s *Statement) Limit(n int) *Statement {
	if n < 0 {
		s.logger.Debug("negative limit ignored", "limit", n)
		return s
	}
	s.limit = n
	s.hasLimit = true
	return s
}

// Offset sets the row-skip count. Values that are zero or negative are
// ignored; repeated calls overwrite.
func (s *Statement) Offset(n int) *Statement {
	if n <= 0 {
		s.logger.Debug("non-positive offset ignored", "offset", n)
		return s
	}
	s.offset = n
	return s
}

// First limits the statement to a single row. Equivalent to Limit(1).
func (s *Statement) First() *Statement {
	return s.Limit(1)
}

// Insert stores a column-to-value payload and switches rendering to the
// INSERT form. Column names are not checked against any schema. When a
// payload is present, select-oriented clauses (filters, ordering, pagination)
// are ignored by rendering.
func (s *Statement) Insert(values map[string]interface{}) *Statement {
	s.insert = values
	return s
}

// Err returns the first error recorded by a configuration call, or nil.
func (s *Statement) Err() error {
	return s.err
}

// fail records the first configuration error.
func (s *Statement) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// String renders the accumulated state as SQL text.
//
// Rendering is a pure read: it can be called repeatedly and always yields the
// same text for the same state. Clause positions in the output are fixed
// regardless of call order; only ordering within a clause follows the caller.
// The statement is always terminated with a semicolon.
func (s *Statement) String() string {
	if s.insert != nil {
		return s.renderInsert()
	}
	return s.renderSelect()
}

// Build renders the statement and reports the first recorded error.
// When a security validator is configured, the rendered text must also pass
// validation.
func (s *Statement) Build() (string, error) {
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	_, span := s.tracer.StartSpan(ctx, "quill.statement.build")
	defer span.End()

	span.SetAttributes(
		attribute.Int("statement.filters", len(s.filters)),
		attribute.Int("statement.orderings", len(s.orders)),
	)

	var sql string
	err := s.err
	if err == nil {
		sql = s.String()
		if s.validator != nil {
			if verr := s.validator.ValidateStatement(sql); verr != nil {
				err = WrapError(verr, "statement validation failed")
				sql = ""
			}
		}
	}

	tracer.AddStatementAttributes(span, &tracer.StatementMetadata{
		SQL:       s.sanitizer.Sanitize(sql),
		Operation: s.kind(),
		Table:     s.table,
		Error:     err,
	})

	if err != nil {
		return "", err
	}

	s.logger.Debug("statement built",
		"sql", s.sanitizer.Sanitize(sql),
		"table", s.table,
		"operation", s.kind(),
	)

	return sql, nil
}

// kind reports which rendering form the statement takes.
func (s *Statement) kind() string {
	if s.insert != nil {
		return "INSERT"
	}
	return "SELECT"
}

// renderSelect assembles the SELECT form:
// SELECT <projection> FROM <table> [WHERE ...] [ORDER BY ...] [LIMIT n] [OFFSET n];
func (s *Statement) renderSelect() string {
	parts := make([]string, 0, 4+len(s.filters))

	projection := "*"
	if len(s.columns) > 0 {
		projection = "(" + strings.Join(s.columns, ", ") + ")"
	}
	parts = append(parts, "SELECT "+projection+" FROM "+s.table)

	for i, f := range s.filters {
		keyword := "AND"
		if i == 0 {
			keyword = "WHERE"
		}
		parts = append(parts, keyword+" "+f.field+" "+f.op+" "+f.value.text)
	}

	if len(s.orders) > 0 {
		terms := make([]string, len(s.orders))
		for i, o := range s.orders {
			terms[i] = o.field + " " + string(o.dir)
		}
		parts = append(parts, "ORDER BY "+strings.Join(terms, ", "))
	}

	if s.hasLimit && s.limit > 0 {
		parts = append(parts, "LIMIT "+strconv.Itoa(s.limit))
	}

	if s.offset > 0 {
		parts = append(parts, "OFFSET "+strconv.Itoa(s.offset))
	}

	return strings.Join(parts, " ") + ";"
}

// renderInsert assembles the INSERT form:
// INSERT INTO <table> (<columns>) VALUES (<literals>);
// Payload keys are sorted for deterministic SQL generation.
func (s *Statement) renderInsert() string {
	keys := make([]string, 0, len(s.insert))
	for k := range s.insert {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, len(keys))
	for i, k := range keys {
		lit := newLiteral(s.insert[k])
		if lit.kind == literalInvalid {
			s.logger.Debug("unsupported insert value type", "column", k)
		}
		values[i] = lit.text
	}

	return "INSERT INTO " + s.table +
		" (" + strings.Join(keys, ", ") + ")" +
		" VALUES (" + strings.Join(values, ", ") + ");"
}
