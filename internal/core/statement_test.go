package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/quill/internal/security"
)

// captureLogger records log messages for assertions.
type captureLogger struct {
	debug []string
	info  []string
	warn  []string
	errs  []string
}

func (c *captureLogger) Debug(msg string, _ ...any) { c.debug = append(c.debug, msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.info = append(c.info, msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.warn = append(c.warn, msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.errs = append(c.errs, msg) }

func TestStatement_DefaultRender(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{"users", "SELECT * FROM users;"},
		{"orders", "SELECT * FROM orders;"},
		{"audit_log", "SELECT * FROM audit_log;"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.table).String())
		})
	}
}

// TestStatement_RenderScenarios covers the canonical output shapes end to end.
func TestStatement_RenderScenarios(t *testing.T) {
	tests := []struct {
		name string
		stmt *Statement
		want string
	}{
		{
			name: "single equality filter",
			stmt: New("users").Where("email", "a@b.com"),
			want: "SELECT * FROM users WHERE email = 'a@b.com';",
		},
		{
			name: "two filters joined with AND",
			stmt: New("users").Where("email", "a@b.com").Where("name", "john"),
			want: "SELECT * FROM users WHERE email = 'a@b.com' AND name = 'john';",
		},
		{
			name: "limit and offset",
			stmt: New("users").Limit(5).Offset(5),
			want: "SELECT * FROM users LIMIT 5 OFFSET 5;",
		},
		{
			name: "column projection",
			stmt: New("users").Select("email", "password"),
			want: "SELECT (email, password) FROM users;",
		},
		{
			name: "single ORDER BY clause with multiple terms",
			stmt: New("users").OrderBy("created_at").OrderBy("name", Desc),
			want: "SELECT * FROM users ORDER BY created_at ASC, name DESC;",
		},
		{
			name: "insert form",
			stmt: New("users").Insert(map[string]interface{}{"email": "a@b.com", "password": "12345"}),
			want: "INSERT INTO users (email, password) VALUES ('a@b.com', '12345');",
		},
		{
			name: "explicit comparison operators",
			stmt: New("users").WhereOp("age", OpGreaterOrEqual, 18).WhereOp("age", OpLessThan, 65),
			want: "SELECT * FROM users WHERE age >= 18 AND age < 65;",
		},
		{
			name: "all select clauses together",
			stmt: New("users").
				Select("email").
				WhereOp("age", OpGreaterThan, 30).
				OrderBy("email").
				Limit(10).
				Offset(20),
			want: "SELECT (email) FROM users WHERE age > 30 ORDER BY email ASC LIMIT 10 OFFSET 20;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stmt.String())
		})
	}
}

func TestStatement_FilterChain(t *testing.T) {
	s := New("events").
		Where("kind", "click").
		WhereOp("ts", OpGreaterThan, 1000).
		WhereOp("ts", OpLessOrEqual, 2000).
		Where("visible", true)

	sql := s.String()

	assert.Equal(t, 1, strings.Count(sql, "WHERE"))
	assert.Equal(t, 3, strings.Count(sql, "AND"))

	// Predicates appear in insertion order.
	assert.Less(t, strings.Index(sql, "kind = 'click'"), strings.Index(sql, "ts > 1000"))
	assert.Less(t, strings.Index(sql, "ts > 1000"), strings.Index(sql, "ts <= 2000"))
	assert.Less(t, strings.Index(sql, "ts <= 2000"), strings.Index(sql, "visible = 1"))
}

func TestStatement_InvalidOperator(t *testing.T) {
	for _, op := range []string{"LIKE", "IN", "<>", "==", "", " =", "DROP"} {
		t.Run(op, func(t *testing.T) {
			s := New("users").Where("email", "a@b.com")
			s.WhereOp("name", op, "john")

			// The failed call must not mutate the filter sequence.
			require.Len(t, s.filters, 1)
			assert.Equal(t, "SELECT * FROM users WHERE email = 'a@b.com';", s.String())

			assert.ErrorIs(t, s.Err(), ErrInvalidOperator)

			sql, err := s.Build()
			assert.ErrorIs(t, err, ErrInvalidOperator)
			assert.Empty(t, sql)
		})
	}
}

func TestStatement_InvalidOperatorKeepsChaining(t *testing.T) {
	s := New("users")
	s.WhereOp("name", "LIKE", "john%").Where("email", "a@b.com")

	// The statement stays usable; only the rejected filter is missing.
	assert.Equal(t, "SELECT * FROM users WHERE email = 'a@b.com';", s.String())
	assert.ErrorIs(t, s.Err(), ErrInvalidOperator)
}

func TestStatement_SelectDeduplication(t *testing.T) {
	s := New("users").Select("email").Select("email", "name").Select("name")
	assert.Equal(t, "SELECT (email, name) FROM users;", s.String())

	// Idempotent under duplicate input.
	once := New("users").Select("x").String()
	twice := New("users").Select("x").Select("x").String()
	assert.Equal(t, once, twice)
}

func TestStatement_Limit(t *testing.T) {
	tests := []struct {
		name string
		stmt *Statement
		want string
	}{
		{"negative limit ignored", New("users").Limit(-1), "SELECT * FROM users;"},
		{"zero limit emits no clause", New("users").Limit(0), "SELECT * FROM users;"},
		{"last write wins", New("users").Limit(5).Limit(3), "SELECT * FROM users LIMIT 3;"},
		{"negative does not clear prior limit", New("users").Limit(5).Limit(-1), "SELECT * FROM users LIMIT 5;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stmt.String())
		})
	}
}

func TestStatement_Offset(t *testing.T) {
	tests := []struct {
		name string
		stmt *Statement
		want string
	}{
		{"zero offset ignored", New("users").Offset(0), "SELECT * FROM users;"},
		{"negative offset ignored", New("users").Offset(-5), "SELECT * FROM users;"},
		{"offset without limit", New("users").Offset(5), "SELECT * FROM users OFFSET 5;"},
		{"offset with filter", New("users").Where("a", 1).Offset(5), "SELECT * FROM users WHERE a = 1 OFFSET 5;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stmt.String())
		})
	}
}

func TestStatement_First(t *testing.T) {
	assert.Equal(t, "SELECT * FROM users LIMIT 1;", New("users").First().String())
}

func TestStatement_OrderBy(t *testing.T) {
	tests := []struct {
		name string
		stmt *Statement
		want string
	}{
		{"default ascending", New("users").OrderBy("name"), "SELECT * FROM users ORDER BY name ASC;"},
		{"descending", New("users").OrderBy("name", Desc), "SELECT * FROM users ORDER BY name DESC;"},
		{"lowercase direction normalized", New("users").OrderBy("name", "desc"), "SELECT * FROM users ORDER BY name DESC;"},
		{"unknown direction falls back to ascending", New("users").OrderBy("name", "SIDEWAYS"), "SELECT * FROM users ORDER BY name ASC;"},
		{
			"terms keep insertion order without deduplication",
			New("users").OrderBy("a", Desc).OrderBy("b").OrderBy("a"),
			"SELECT * FROM users ORDER BY a DESC, b ASC, a ASC;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stmt.String())
		})
	}
}

// Clause positions in the output are fixed regardless of the order the
// configuration methods were called in.
func TestStatement_ClauseOrderFixed(t *testing.T) {
	s := New("users").
		Offset(20).
		Limit(10).
		OrderBy("name").
		Where("active", true).
		Select("name")

	assert.Equal(t,
		"SELECT (name) FROM users WHERE active = 1 ORDER BY name ASC LIMIT 10 OFFSET 20;",
		s.String(),
	)
}

func TestStatement_RenderIdempotent(t *testing.T) {
	s := New("users").Where("email", "a@b.com").OrderBy("name").Limit(3)

	first := s.String()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.String())
	}

	sql, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, first, sql)
}

// An insert payload wins over select-oriented clauses; they are ignored, not
// rejected.
func TestStatement_InsertPrecedence(t *testing.T) {
	s := New("users").
		Where("email", "a@b.com").
		OrderBy("name").
		Limit(5).
		Insert(map[string]interface{}{"email": "x@y.com"})

	assert.Equal(t, "INSERT INTO users (email) VALUES ('x@y.com');", s.String())
}

func TestStatement_InsertLiterals(t *testing.T) {
	s := New("accounts").Insert(map[string]interface{}{
		"name":    "ada",
		"age":     37,
		"active":  true,
		"blocked": false,
		"score":   12.5,
	})

	assert.Equal(t,
		"INSERT INTO accounts (active, age, blocked, name, score) VALUES (1, 37, 0, 'ada', 12.5);",
		s.String(),
	)
}

func TestStatement_FilterLiterals(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"string", "john", "SELECT * FROM t WHERE f = 'john';"},
		{"true", true, "SELECT * FROM t WHERE f = 1;"},
		{"false", false, "SELECT * FROM t WHERE f = 0;"},
		{"int", 42, "SELECT * FROM t WHERE f = 42;"},
		{"negative int", -7, "SELECT * FROM t WHERE f = -7;"},
		{"int64", int64(9000000000), "SELECT * FROM t WHERE f = 9000000000;"},
		{"float", 5.5, "SELECT * FROM t WHERE f = 5.5;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New("t").Where("f", tt.value).String())
		})
	}
}

// Values outside the supported scalar set render as empty literal text
// rather than erroring.
func TestStatement_UnsupportedValueType(t *testing.T) {
	s := New("users").Where("tags", []int{1, 2})
	assert.Equal(t, "SELECT * FROM users WHERE tags = ;", s.String())
	assert.NoError(t, s.Err())
}

func TestStatement_BuildWithValidator(t *testing.T) {
	v := security.NewValidator()

	clean := New("users", WithValidator(v)).Where("email", "a@b.com")
	sql, err := clean.Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE email = 'a@b.com';", sql)

	hostile := New("users", WithValidator(v)).Where("name", "x'; DROP TABLE users; --")
	sql, err = hostile.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement validation failed")
	assert.Empty(t, sql)
}

func TestStatement_IgnoredInputsLogged(t *testing.T) {
	log := &captureLogger{}
	s := New("users", WithLogger(log))

	s.Limit(-1)
	s.Offset(0)
	s.WhereOp("name", "LIKE", "x")

	require.Len(t, log.debug, 3)
	assert.Contains(t, log.debug, "negative limit ignored")
	assert.Contains(t, log.debug, "non-positive offset ignored")
	assert.Contains(t, log.debug, "filter rejected")
}
