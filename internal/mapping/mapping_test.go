package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Table_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefault_Table_CoversCanonicalDocuments(t *testing.T) {
	table := Default()
	require.Len(t, table, 4)

	sources := make([]string, 0, len(table))
	for _, e := range table {
		sources = append(sources, e.Source)
	}
	assert.Contains(t, sources, "CHANGELOG.md")
	assert.Contains(t, sources, "ROADMAP.md")
	assert.Contains(t, sources, "CONTRIBUTING.md")
	assert.Contains(t, sources, "SECURITY.md")
}

func TestValidate_DuplicateDestination_ReturnsError(t *testing.T) {
	table := Table{
		{Source: "CHANGELOG.md", Dest: "changelog.md", Title: "Changelog", Description: "d"},
		{Source: "ROADMAP.md", Dest: "changelog.md", Title: "Roadmap", Description: "d"},
	}

	err := table.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrDuplicateDestination)
}

func TestValidate_EmptyTitle_ReturnsError(t *testing.T) {
	table := Table{
		{Source: "CHANGELOG.md", Dest: "changelog.md", Title: "", Description: "d"},
	}

	err := table.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMissingTitle)
}

func TestValidate_EmptyDescription_ReturnsError(t *testing.T) {
	table := Table{
		{Source: "CHANGELOG.md", Dest: "changelog.md", Title: "Changelog", Description: ""},
	}

	err := table.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMissingDescription)
}

func TestValidate_EmptyPaths_ReturnsError(t *testing.T) {
	err := Table{{Dest: "x.md", Title: "t", Description: "d"}}.Validate()
	require.ErrorIs(t, err, ErrMissingSource)

	err = Table{{Source: "x.md", Title: "t", Description: "d"}}.Validate()
	require.ErrorIs(t, err, ErrMissingDestination)
}

func TestValidate_EmptyTable_IsValid(t *testing.T) {
	require.NoError(t, Table{}.Validate())
}
