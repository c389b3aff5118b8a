package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/makeholdrequest"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/console"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/journal/memengine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_Session_IssueHoldReturnAndReissueFromHold(t *testing.T) {
	// arrange
	script := strings.Join([]string{
		`add-staff Clerk "Main Street 1" E-001 2500`,
		`staff 1`,
		`add-book Dune Fiction "Frank Herbert"`,
		`add-borrower Alice "Elm Street 1"`,
		`add-borrower Bob "Oak Street 2"`,
		`issue 1 1`,
		`n`,
		`issue 1 2`,
		`y`,
		`holds 1`,
		`return 1`,
		`issue 1 2`,
		`n`,
		`history 1`,
		`bogus`,
		`quit`,
		`books`,
	}, "\n") + "\n"

	session, out, journal := givenSession(t, script)

	// act
	err := session.run(context.Background())

	// assert
	require.NoError(t, err)
	output := out.String()

	assert.Contains(t, output, "Staff member 1 added.")
	assert.Contains(t, output, "At the desk: Clerk (staff 1, E-001)")
	assert.Contains(t, output, "Book 1 added.")
	assert.Contains(t, output, "Borrower 2 registered.")
	assert.Contains(t, output, `"Dune" has been issued to Alice`)
	assert.Contains(t, output, core.PlaceHoldQuestion)
	assert.Contains(t, output, makeholdrequest.MessagePlaced)
	assert.Contains(t, output, "1. Bob (borrower 2), requested 2025-03-01")
	assert.Contains(t, output, "has been returned.")
	assert.Contains(t, output, `"Dune" has been issued to Bob`)
	assert.Contains(t, output, "1 loan(s), 0 open, unpaid fines 0.00")
	assert.Contains(t, output, `Error: unknown command "bogus"`)
	assert.NotContains(t, output, "TITLE", "commands after quit must not run")

	events, _, err := journal.Query(context.Background(), shell.BookStreamFilter(1))
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, core.BookIssuedToBorrowerEventType, events[0].EventType)
	assert.Equal(t, core.IssuingBookFailedEventType, events[1].EventType)
	assert.Equal(t, core.HoldRequestPlacedEventType, events[2].EventType)
	assert.Equal(t, core.BookReturnedByBorrowerEventType, events[3].EventType)
	assert.Equal(t, core.BookIssuedToBorrowerEventType, events[4].EventType)
}

func Test_Session_IssueWithoutStaffIsReported(t *testing.T) {
	// arrange
	session, out, _ := givenSession(t, "add-book Emma Fiction Austen\nadd-borrower Alice Home\nissue 1 1\n")

	// act
	err := session.run(context.Background())

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Error: "+errNoStaffSelected.Error())
}

func Test_Session_OverdueReturnWithUnpaidFine(t *testing.T) {
	// arrange
	library := GivenLibrary(t)
	book := library.GivenBook("Emma")
	alice := library.GivenBorrower("Alice")
	library.GivenLoan(t, book, alice, library.FakeClock)

	out := &bytes.Buffer{}
	session, err := newApp(
		library.Registry,
		library.Journal,
		console.NewPrompter(strings.NewReader("staff 1\nreturn 1\nn\nborrower 1\n"), out),
		out,
		observable.Instrumentation{},
	)
	require.NoError(t, err)
	session.now = func() time.Time { return library.FakeClock.AddDate(0, 0, 20) }

	// act
	err = session.run(context.Background())

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "6 day(s) overdue")
	assert.Contains(t, out.String(), `"Emma" has been returned.`)
	assert.Contains(t, out.String(), "Outstanding fine: 6.00")
	assert.Equal(t, []string{core.BookReturnedByBorrowerEventType}, library.RecordedEventTypes(t, book.ID))
}

func Test_Session_EditBookWithFlags(t *testing.T) {
	// arrange
	session, out, _ := givenSession(t, "add-book Dune Fiction Herbert\nedit 1 --title \"Dune Messiah\"\nbook 1\n")

	// act
	err := session.run(context.Background())

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), `Book 1: "Dune Messiah" by Herbert (Fiction), available`)
	assert.Contains(t, out.String(), "No Hold Requests.")
}

func Test_Session_PolicyCanBeChanged(t *testing.T) {
	// arrange
	session, out, _ := givenSession(t, "policy --loan-days 21 --fine 0.5\npolicy --loan-days -1\n")

	// act
	err := session.run(context.Background())

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Loan period 21 day(s), fine 0.50 per day, hold requests expire after 7 day(s)")
	assert.Contains(t, out.String(), "Error: validate lending policy")
	assert.Equal(t, 21, session.registry.Policy().LoanPeriodDays)
}

func Test_Session_StopsOnCanceledContext(t *testing.T) {
	// arrange
	session, _, _ := givenSession(t, "")
	session.prompter = console.NewPrompter(blockingReader{}, &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	err := session.run(ctx)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_RootCmd_RunsSessionWithSeed(t *testing.T) {
	// arrange
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(`
staff:
  - name: Ada
    address: Main Street 1
    employee_number: E-1
    wage: 2500
books:
  - title: Dune
    subject: Science Fiction
    author: Frank Herbert
`), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader("staff\nbooks\nquit\n"), &out)
	cmd.SetArgs([]string{"--seed", seedPath, "--env-file", filepath.Join(dir, "missing.env")})

	// act
	err := cmd.ExecuteContext(context.Background())

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "At the desk: Ada (staff 1, E-1)")
	assert.Contains(t, out.String(), "Frank Herbert")
	assert.Contains(t, out.String(), "available")
}

func Test_SimulateCommand_PrintsReport(t *testing.T) {
	// arrange
	dir := t.TempDir()

	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out)
	cmd.SetArgs([]string{
		"simulate",
		"--env-file", filepath.Join(dir, "missing.env"),
		"--workers", "2",
		"--operations", "50",
		"--books", "3",
		"--borrowers", "4",
	})

	// act
	err := cmd.ExecuteContext(context.Background())

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Operations: 50 (0 errors)")
	assert.Contains(t, out.String(), "Invariants: ok")
}

func Test_SplitArgs(t *testing.T) {
	testCases := []struct {
		line string
		want []string
	}{
		{line: "", want: nil},
		{line: "  issue  1   2 ", want: []string{"issue", "1", "2"}},
		{line: `add-book "The Left Hand of Darkness" SF 'Ursula K. Le Guin'`, want: []string{"add-book", "The Left Hand of Darkness", "SF", "Ursula K. Le Guin"}},
		{line: `edit 3 --title "O'Brien's Tale"`, want: []string{"edit", "3", "--title", "O'Brien's Tale"}},
		{line: `add-borrower "" Home`, want: []string{"add-borrower", "", "Home"}},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			got, err := splitArgs(tc.line)

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_SplitArgs_UnterminatedQuote(t *testing.T) {
	_, err := splitArgs(`add-book "Dune`)

	assert.ErrorIs(t, err, errUnterminatedQuote)
}

/***** test helpers *****/

func givenClock() time.Time {
	return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func givenSession(t *testing.T, script string) (*app, *bytes.Buffer, *memengine.Engine) {
	t.Helper()

	registry, err := catalog.NewRegistry()
	require.NoError(t, err)

	journal := memengine.NewEngine()
	out := &bytes.Buffer{}

	session, err := newApp(registry, journal, console.NewPrompter(strings.NewReader(script), out), out, observable.Instrumentation{})
	require.NoError(t, err)

	session.now = givenClock

	return session, out, journal
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
