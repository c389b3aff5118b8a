package core

// Staff is a library employee who issues and receives books.
type Staff struct {
	ID             ID
	Name           string
	Address        string
	EmployeeNumber string
	Wage           Money
}

// NewStaff creates a staff member with an ID from ids.
func NewStaff(ids *IDAllocator, name, address, employeeNumber string, wage Money) *Staff {
	return &Staff{
		ID:             ids.Next(KindStaff),
		Name:           name,
		Address:        address,
		EmployeeNumber: employeeNumber,
		Wage:           wage,
	}
}
