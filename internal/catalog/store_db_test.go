package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery(t *testing.T) {
	query, args := buildListQuery(Query{})
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY position ASC")
	assert.Empty(t, args)

	query, args = buildListQuery(Query{Category: "Shirts", Trending: true, Search: "oxford"})
	assert.Contains(t, query, "category = $1")
	assert.Contains(t, query, "trending = TRUE")
	assert.Contains(t, query, "ILIKE $2")
	assert.Equal(t, []any{"Shirts", "%oxford%"}, args)
}

func TestBuildListQuery_SearchMatchesLiterally(t *testing.T) {
	// metacharacters in the term must not act as wildcards
	_, args := buildListQuery(Query{Search: `100%_wool\blend`})
	assert.Equal(t, []any{`%100\%\_wool\\blend%`}, args)
}
