package catalog

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ErrNotFound is returned when an identifier is unknown to the registry.
var ErrNotFound = errors.New("not found")

// Registry holds the catalogued entities and the lending policy.
type Registry struct {
	mu sync.RWMutex

	ids    *core.IDAllocator
	policy core.LendingPolicy

	books     map[core.ID]*core.Book
	borrowers map[core.ID]*core.Borrower
	staff     map[core.ID]*core.Staff
	loans     map[core.ID]*core.Loan

	bookLocks map[core.ID]*sync.Mutex
}

// Option defines a functional option for configuring a Registry.
type Option func(*Registry) error

// WithPolicy replaces the default lending policy.
func WithPolicy(policy core.LendingPolicy) Option {
	return func(r *Registry) error {
		if err := policy.Validate(); err != nil {
			return err
		}

		r.policy = policy

		return nil
	}
}

// WithIDAllocator lets several registries, or a registry and a test, share one allocator.
func WithIDAllocator(ids *core.IDAllocator) Option {
	return func(r *Registry) error {
		if ids == nil {
			return core.NewOpError("new registry", core.ErrInvalidArgument, "id allocator is missing")
		}

		r.ids = ids

		return nil
	}
}

// NewRegistry creates an empty Registry with the default lending policy.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		ids:       core.NewIDAllocator(),
		policy:    core.DefaultLendingPolicy(),
		books:     make(map[core.ID]*core.Book),
		borrowers: make(map[core.ID]*core.Borrower),
		staff:     make(map[core.ID]*core.Staff),
		loans:     make(map[core.ID]*core.Loan),
		bookLocks: make(map[core.ID]*sync.Mutex),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// IDs returns the allocator used for new entities.
func (r *Registry) IDs() *core.IDAllocator {
	return r.ids
}

// Policy returns the current lending policy.
func (r *Registry) Policy() core.LendingPolicy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.policy
}

// SetPolicy replaces the lending policy if it is valid.
func (r *Registry) SetPolicy(policy core.LendingPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.policy = policy

	return nil
}

// AddBook catalogues a new, available book.
func (r *Registry) AddBook(title, subject, author string) *core.Book {
	book := core.NewBook(r.ids, title, subject, author)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.books[book.ID] = book
	r.bookLocks[book.ID] = &sync.Mutex{}

	return book
}

// RegisterBorrower registers a new borrower without loans, hold requests or fines.
func (r *Registry) RegisterBorrower(name, address string) *core.Borrower {
	borrower := core.NewBorrower(r.ids, name, address)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.borrowers[borrower.ID] = borrower

	return borrower
}

// AddStaff registers a new staff member.
func (r *Registry) AddStaff(name, address, employeeNumber string, wage core.Money) *core.Staff {
	staff := core.NewStaff(r.ids, name, address, employeeNumber, wage)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.staff[staff.ID] = staff

	return staff
}

// NewLoan allocates a loan that is not yet known to the registry.
// It becomes visible through Loan only after RecordLoan.
func (r *Registry) NewLoan(borrower *core.Borrower, book *core.Book, issuedBy *core.Staff, issuedAt time.Time) *core.Loan {
	return core.NewLoan(r.ids, borrower, book, issuedBy, issuedAt)
}

// RecordLoan makes an issued loan available for lookups.
func (r *Registry) RecordLoan(loan *core.Loan) {
	if loan == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.loans[loan.ID] = loan
}

// Book returns the book with the given ID.
func (r *Registry) Book(id core.ID) (*core.Book, error) {
	return lookup(r, r.books, core.KindBook, id)
}

// Borrower returns the borrower with the given ID.
func (r *Registry) Borrower(id core.ID) (*core.Borrower, error) {
	return lookup(r, r.borrowers, core.KindBorrower, id)
}

// Staff returns the staff member with the given ID.
func (r *Registry) Staff(id core.ID) (*core.Staff, error) {
	return lookup(r, r.staff, core.KindStaff, id)
}

// Loan returns the loan with the given ID, including returned ones.
func (r *Registry) Loan(id core.ID) (*core.Loan, error) {
	return lookup(r, r.loans, core.KindLoan, id)
}

// Books returns all books ordered by ID.
func (r *Registry) Books() []*core.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedByID(r.books)
}

// Borrowers returns all borrowers ordered by ID.
func (r *Registry) Borrowers() []*core.Borrower {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedByID(r.borrowers)
}

// StaffMembers returns all staff members ordered by ID.
func (r *Registry) StaffMembers() []*core.Staff {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedByID(r.staff)
}

// LockBook acquires the lock of a book and returns the function releasing it.
// Command handlers hold it for the whole operation, including prompts.
func (r *Registry) LockBook(id core.ID) (func(), error) {
	r.mu.RLock()
	lock, ok := r.bookLocks[id]
	r.mu.RUnlock()

	if !ok {
		return nil, core.NewOpError("lock book", ErrNotFound, "%s %s", core.KindBook, id)
	}

	lock.Lock()

	return lock.Unlock, nil
}

func lookup[E any](r *Registry, entities map[core.ID]E, kind core.EntityKind, id core.ID) (E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := entities[id]
	if !ok {
		var zero E
		return zero, core.NewOpError("lookup", ErrNotFound, "%s %s", kind, id)
	}

	return entity, nil
}

func sortedByID[E any](entities map[core.ID]E) []E {
	ids := make([]core.ID, 0, len(entities))
	for id := range entities {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	sorted := make([]E, 0, len(ids))
	for _, id := range ids {
		sorted = append(sorted, entities[id])
	}

	return sorted
}
