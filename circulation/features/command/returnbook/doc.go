// Package returnbook implements the Return Book use case.
//
// The loan is closed, the fine for an overdue return is assessed and the borrower is asked
// whether to pay it right away. A book with pending hold requests stays held for the earliest
// holder, who claims it by issuing it; there is no automatic issue on return.
package returnbook
