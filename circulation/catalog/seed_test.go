package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const seedDocument = `
staff:
  - name: Ada
    address: Main Street 1
    employee_number: E-1
    wage: 2500
books:
  - title: Dune
    subject: Science Fiction
    author: Frank Herbert
  - title: Emma
    subject: Novel
    author: Jane Austen
borrowers:
  - name: Bob
    address: Side Street 2
`

func Test_ParseSeed_LoadsIntoRegistry(t *testing.T) {
	// arrange
	seed, err := catalog.ParseSeed([]byte(seedDocument))
	require.NoError(t, err)

	registry, err := catalog.NewRegistry()
	require.NoError(t, err)

	// act
	registry.Load(seed)

	// assert
	books := registry.Books()
	require.Len(t, books, 2)
	assert.Equal(t, "Emma", books[1].Title())
	assert.Equal(t, "Jane Austen", books[1].Author())

	staff, err := registry.Staff(1)
	require.NoError(t, err)
	assert.Equal(t, "E-1", staff.EmployeeNumber)
	assert.Equal(t, core.Money(2500), staff.Wage)

	borrowers := registry.Borrowers()
	require.Len(t, borrowers, 1)
	assert.Equal(t, "Bob", borrowers[0].Name)
}

func Test_ParseSeed_RejectsInvalidDocuments(t *testing.T) {
	testCases := []struct {
		name     string
		document string
	}{
		{"unknown field", "books:\n  - title: Dune\n    isbn: 123\n"},
		{"book without title", "books:\n  - author: Frank Herbert\n"},
		{"borrower without name", "borrowers:\n  - address: Side Street 2\n"},
		{"negative wage", "staff:\n  - name: Ada\n    wage: -1\n"},
		{"not yaml", "books: [unclosed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.ParseSeed([]byte(tc.document))

			assert.ErrorIs(t, err, catalog.ErrInvalidSeed)
		})
	}
}

func Test_LoadSeedFile(t *testing.T) {
	// arrange
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedDocument), 0o600))

	// act
	seed, err := catalog.LoadSeedFile(path)

	// assert
	require.NoError(t, err)
	assert.Len(t, seed.Books, 2)
}

func Test_LoadSeedFile_MissingFile(t *testing.T) {
	_, err := catalog.LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}
