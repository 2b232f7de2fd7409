package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"github.com/teranos/qntx-hooks/hooks", "hooks"},
		{"context", "context"},
		{"example.com/lib/v2", "lib"},
		{"github.com/mattn/go-sqlite3", "sqlite3"},
		{"gopkg.in/yaml.v3", "yaml"},
		{"example.com/my-lib", "my_lib"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultName(tt.path))
		})
	}
}

func TestContainerInScope(t *testing.T) {
	assert.True(t, Container{Supertypes: []TypeRef{{Qualifier: "hooks", Name: "Hooks"}}}.InScope())
	assert.True(t, Container{Supertypes: []TypeRef{{Qualifier: "h", Name: "HookSet"}}}.InScope())
	assert.False(t, Container{Supertypes: []TypeRef{{Qualifier: "hooks", Name: "HooksAlias"}}}.InScope())
	assert.False(t, Container{}.InScope())
}

func TestContainerResolve(t *testing.T) {
	c := Container{Imports: []Import{{Name: "hooks", Path: "example.com/hooks"}}}

	imp, ok := c.Resolve(nil, "hooks")
	assert.True(t, ok)
	assert.Equal(t, "example.com/hooks", imp.Path)

	_, ok = c.Resolve(nil, "time")
	assert.False(t, ok)

	d := &Declaration{Imports: []Import{{Name: "h", Path: "example.com/hooks", Explicit: true}}}
	imp, ok = c.Resolve(d, "h")
	assert.True(t, ok)
	assert.True(t, imp.Explicit)
}

func TestTypeRefString(t *testing.T) {
	ref := TypeRef{Qualifier: "hooks", Name: "SyncBail", Args: []TypeArg{{Expr: "func(x, y int) string"}}}
	assert.Equal(t, "hooks.SyncBail[func(x, y int) string]", ref.String())
	assert.Equal(t, "Hooks", TypeRef{Name: "Hooks"}.String())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "car.go:12:2", Position{File: "car.go", Line: 12, Column: 2}.String())
	assert.Equal(t, "-", Position{}.String())
}
