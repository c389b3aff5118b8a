package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ErrInvalidSeed is returned when a seed document cannot be loaded.
var ErrInvalidSeed = errors.New("invalid catalog seed")

// Seed is the YAML document used to populate an empty registry:
//
//	staff:
//	  - name: Ada
//	    address: Main Street 1
//	    employee_number: E-1
//	    wage: 2500
//	books:
//	  - title: Dune
//	    subject: Science Fiction
//	    author: Frank Herbert
//	borrowers:
//	  - name: Bob
//	    address: Side Street 2
//
// Entities get their IDs in document order, staff first, then books, then borrowers.
type Seed struct {
	Staff     []StaffSeed    `yaml:"staff"`
	Books     []BookSeed     `yaml:"books"`
	Borrowers []BorrowerSeed `yaml:"borrowers"`
}

type StaffSeed struct {
	Name           string  `yaml:"name"`
	Address        string  `yaml:"address"`
	EmployeeNumber string  `yaml:"employee_number"`
	Wage           float64 `yaml:"wage"`
}

type BookSeed struct {
	Title   string `yaml:"title"`
	Subject string `yaml:"subject"`
	Author  string `yaml:"author"`
}

type BorrowerSeed struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// ParseSeed decodes and validates a seed document. Unknown fields are rejected, an empty document is an empty seed.
func ParseSeed(data []byte) (Seed, error) {
	var seed Seed

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return Seed{}, errors.Join(ErrInvalidSeed, err)
	}

	if err := seed.validate(); err != nil {
		return Seed{}, errors.Join(ErrInvalidSeed, err)
	}

	return seed, nil
}

// LoadSeedFile reads and parses the seed document at path.
func LoadSeedFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file %s: %w", path, err)
	}

	return ParseSeed(data)
}

func (s Seed) validate() error {
	for i, staff := range s.Staff {
		if staff.Name == "" {
			return core.NewOpError("validate seed", core.ErrInvalidArgument, "staff #%d has no name", i+1)
		}

		if staff.Wage < 0 {
			return core.NewOpError("validate seed", core.ErrInvalidArgument, "staff %q has a negative wage", staff.Name)
		}
	}

	for i, book := range s.Books {
		if book.Title == "" {
			return core.NewOpError("validate seed", core.ErrInvalidArgument, "book #%d has no title", i+1)
		}
	}

	for i, borrower := range s.Borrowers {
		if borrower.Name == "" {
			return core.NewOpError("validate seed", core.ErrInvalidArgument, "borrower #%d has no name", i+1)
		}
	}

	return nil
}

// Load adds all entities of seed to the registry.
func (r *Registry) Load(seed Seed) {
	for _, staff := range seed.Staff {
		r.AddStaff(staff.Name, staff.Address, staff.EmployeeNumber, core.Money(staff.Wage))
	}

	for _, book := range seed.Books {
		r.AddBook(book.Title, book.Subject, book.Author)
	}

	for _, borrower := range seed.Borrowers {
		r.RegisterBorrower(borrower.Name, borrower.Address)
	}
}
