package source

// StringID identifies an interned string (field and shape names).
// Interned names give exact equality and a stable display form.
type StringID uint32

const NoStringID StringID = 0

type Interner struct {
	byID  []string            // index -> string (byID[0] = "" for NoStringID)
	index map[string]StringID // string -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the ID for s, inserting it on first use.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Own copy, so the ID does not pin the source buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns b as a string.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup returns the string behind id, or ("", false) for an invalid ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup panics on an invalid ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Has reports whether id is valid for this interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len returns the number of interned strings, including NoStringID.
func (i *Interner) Len() int {
	return len(i.byID)
}
