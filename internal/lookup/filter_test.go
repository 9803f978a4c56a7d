package lookup

import (
	"testing"

	"coldstore/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specFor(t *testing.T, slug string) *entity.Spec {
	t.Helper()
	s, ok := entity.Default().Lookup(slug)
	require.True(t, ok, "missing spec %s", slug)
	return s
}

func TestBuildFilterEmptyTerm(t *testing.T) {
	f := BuildFilter(specFor(t, "customers"), "   ")
	assert.True(t, f.Empty())
	assert.Nil(t, f.Expr())
	assert.True(t, f.Matches(Record{"customer_name": "anything"}))
}

func TestBuildFilterSubstringAcrossSearchableFields(t *testing.T) {
	f := BuildFilter(specFor(t, "customers"), "Acme")
	require.False(t, f.Empty())

	sql, args, err := f.Expr().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(LOWER(customer_number) LIKE ? OR LOWER(customer_name) LIKE ?)", sql)
	assert.Equal(t, []any{"%acme%", "%acme%"}, args)

	assert.True(t, f.Matches(Record{"customer_number": "C-1", "customer_name": "ACME Cold Chain"}))
	assert.True(t, f.Matches(Record{"customer_number": "acme-7", "customer_name": "Other"}))
	assert.False(t, f.Matches(Record{"customer_number": "C-2", "customer_name": "Frost Ltd"}))
}

func TestBuildFilterEscapesPatternCharacters(t *testing.T) {
	f := BuildFilter(specFor(t, "accounts"), `50%_off\`)
	_, args, err := f.Expr().ToSql()
	require.NoError(t, err)
	assert.Equal(t, `%50\%\_off\\%`, args[0])

	assert.True(t, f.Matches(Record{"account_name": "Promo 50%_off\\ stock"}))
	assert.False(t, f.Matches(Record{"account_name": "Promo 50 percent off"}))
}

func TestBuildFilterIdentifierLookup(t *testing.T) {
	id := "3F2504E0-4F89-41D3-9A0C-0305E82C3301"

	f := BuildFilter(specFor(t, "materials"), id)
	assert.Equal(t, "3f2504e0-4f89-41d3-9a0c-0305e82c3301", f.ByID)
	sql, args, err := f.Expr().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "id = ?", sql)
	assert.Equal(t, []any{"3f2504e0-4f89-41d3-9a0c-0305e82c3301"}, args)
	assert.True(t, f.Matches(Record{"id": "3f2504e0-4f89-41d3-9a0c-0305e82c3301"}))
	assert.False(t, f.Matches(Record{"id": "other", "material_name": id}))

	// resources without the identifier short-circuit search text as usual
	f = BuildFilter(specFor(t, "customers"), id)
	assert.Empty(t, f.ByID)
	sql, _, err = f.Expr().ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "LIKE")
}

func TestIsRecordID(t *testing.T) {
	assert.True(t, IsRecordID("00000000-0000-4000-8000-000000000001"))
	assert.False(t, IsRecordID("00000000000040008000000000000001"))
	assert.False(t, IsRecordID("{00000000-0000-4000-8000-000000000001}"))
	assert.False(t, IsRecordID("cust-01"))
	assert.False(t, IsRecordID(""))
}
