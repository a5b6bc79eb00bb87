package symtab

import "fmt"

type StorageLocation int

const (
	Undefined StorageLocation = iota
	// MemoryAbs is mem[Offset].
	MemoryAbs
	// MemoryRel is mem[Base + Offset] with Base naming a register.
	MemoryRel
	Register
	Label
)

// Storage describes where a symbol lives at runtime. The front end never
// assigns storage; it is left for the backend.
type Storage struct {
	Location StorageLocation
	Base     string
	Offset   int64
}

func (s *Storage) String() string {
	switch s.Location {
	case MemoryAbs:
		return fmt.Sprintf("0x%x", s.Offset)
	case MemoryRel:
		return fmt.Sprintf("%s+0x%x", s.Base, s.Offset)
	case Register, Label:
		return s.Base
	}

	return "undefined"
}
