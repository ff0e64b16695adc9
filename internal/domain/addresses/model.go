package addresses

// Address is a postal address owned by its parent record (a shelter or a
// shelter-creation application). It has no lifecycle of its own: it is created
// and patched through the Manager and persisted inline with the owner.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// IsZero reports whether no field is set.
func (a Address) IsZero() bool {
	return a == Address{}
}
