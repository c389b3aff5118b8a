package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/changebookinfo"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/issuebook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/makeholdrequest"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/holdqueue"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/loanhistory"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/console"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/observable"
)

var errNoStaffSelected = errors.New("no staff member at the desk, add one with add-staff and select it with staff <id>")

// app is one desk session: the catalog, the instrumented handlers and the console.
type app struct {
	registry *catalog.Registry
	prompter *console.Prompter
	out      io.Writer
	now      func() time.Time

	staffID core.ID
	done    bool

	issueBook      shell.CoreCommandHandler[issuebook.Command]
	returnBook     shell.CoreCommandHandler[returnbook.Command]
	makeHold       shell.CoreCommandHandler[makeholdrequest.Command]
	changeBookInfo shell.CoreCommandHandler[changebookinfo.Command]
	loanHistory    shell.CoreQueryHandler[loanhistory.Query, loanhistory.LoanHistory]
	holdQueue      shell.CoreQueryHandler[holdqueue.Query, holdqueue.HoldQueue]
}

func newApp(
	registry *catalog.Registry,
	journal shell.Journal,
	prompter *console.Prompter,
	out io.Writer,
	instrumentation observable.Instrumentation,
) (*app, error) {

	a := &app{
		registry: registry,
		prompter: prompter,
		out:      out,
		now:      time.Now,
	}

	var err error

	if a.issueBook, err = observable.NewCommandWrapper[issuebook.Command](
		issuebook.NewCommandHandler(registry, journal, prompter),
		observable.CommandOptions[issuebook.Command](instrumentation)...,
	); err != nil {
		return nil, err
	}

	if a.returnBook, err = observable.NewCommandWrapper[returnbook.Command](
		returnbook.NewCommandHandler(registry, journal, prompter),
		observable.CommandOptions[returnbook.Command](instrumentation)...,
	); err != nil {
		return nil, err
	}

	if a.makeHold, err = observable.NewCommandWrapper[makeholdrequest.Command](
		makeholdrequest.NewCommandHandler(registry, journal, prompter),
		observable.CommandOptions[makeholdrequest.Command](instrumentation)...,
	); err != nil {
		return nil, err
	}

	if a.changeBookInfo, err = observable.NewCommandWrapper[changebookinfo.Command](
		changebookinfo.NewCommandHandler(registry, journal, prompter),
		observable.CommandOptions[changebookinfo.Command](instrumentation)...,
	); err != nil {
		return nil, err
	}

	if a.loanHistory, err = observable.NewQueryWrapper[loanhistory.Query, loanhistory.LoanHistory](
		loanhistory.NewQueryHandler(journal),
		observable.QueryOptions[loanhistory.Query, loanhistory.LoanHistory](instrumentation)...,
	); err != nil {
		return nil, err
	}

	if a.holdQueue, err = observable.NewQueryWrapper[holdqueue.Query, holdqueue.HoldQueue](
		holdqueue.NewQueryHandler(registry),
		observable.QueryOptions[holdqueue.Query, holdqueue.HoldQueue](instrumentation)...,
	); err != nil {
		return nil, err
	}

	return a, nil
}

// selectDefaultStaff puts staffID at the desk, or staff member 1 when staffID is zero and
// such a member exists.
func (a *app) selectDefaultStaff(staffID core.ID) error {
	if staffID.IsZero() {
		if _, err := a.registry.Staff(1); err == nil {
			a.staffID = 1
		}

		return nil
	}

	return a.selectStaff(staffID)
}

func (a *app) selectStaff(staffID core.ID) error {
	if _, err := a.registry.Staff(staffID); err != nil {
		return err
	}

	a.staffID = staffID

	return nil
}

func (a *app) currentStaff() (*core.Staff, error) {
	if a.staffID.IsZero() {
		return nil, errNoStaffSelected
	}

	return a.registry.Staff(a.staffID)
}

// currentLoanOf returns the open loan of a book, read under the book's lock.
func (a *app) currentLoanOf(bookID core.ID) (core.ID, error) {
	unlock, err := a.registry.LockBook(bookID)
	if err != nil {
		return 0, err
	}
	defer unlock()

	book, err := a.registry.Book(bookID)
	if err != nil {
		return 0, err
	}

	loan, ok := book.CurrentLoan()
	if !ok {
		return 0, fmt.Errorf("book %s is not on loan", bookID)
	}

	return loan.ID, nil
}
