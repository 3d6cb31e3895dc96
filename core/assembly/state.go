package assembly

type State uint8

const (
	Start State = iota
	StructureInferred
	TypesEnumerated
	Specialized
	Synthesized
	Repaired
	SequencesEnumerated
	Assembling
	Written
	Discarded
	Done
)

func (s State) String() string {
	switch s {
	case Start:
		return "START"
	case StructureInferred:
		return "STRUCTURE_INFERRED"
	case TypesEnumerated:
		return "TYPES_ENUMERATED"
	case Specialized:
		return "SPECIALIZED"
	case Synthesized:
		return "SYNTHESIZED"
	case Repaired:
		return "REPAIRED"
	case SequencesEnumerated:
		return "SEQUENCES_ENUMERATED"
	case Assembling:
		return "ASSEMBLING"
	case Written:
		return "WRITTEN"
	case Discarded:
		return "DISCARDED"
	case Done:
		return "DONE"
	}
	return "UNKNOWN"
}
