package worldnav

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v2"
)

// Pattern wraps a compiled regular expression used to match displayed menu
// actions or inventory item names. The source is compiled as written: only
// a pattern that carries its own anchors (e.g. "^Open$") matches whole
// names. It serializes as its source string in both CBOR and YAML.
type Pattern struct {
	*regexp.Regexp
}

// NewPattern compiles src into a Pattern.
func NewPattern(src string) (Pattern, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Regexp: re}, nil
}

// MustPattern compiles src, panicking on an invalid expression. It exists for
// constructing Patterns the generator emits itself (e.g. the door action
// regex), never for user-supplied input.
func MustPattern(src string) Pattern {
	p, err := NewPattern(src)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) source() string {
	if p.Regexp == nil {
		return ""
	}
	return p.Regexp.String()
}

// MarshalCBOR implements cbor.Marshaler.
func (p Pattern) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(p.source())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (p *Pattern) UnmarshalCBOR(data []byte) error {
	var src string
	if err := cbor.Unmarshal(data, &src); err != nil {
		return err
	}
	compiled, err := NewPattern(src)
	if err != nil {
		return err
	}
	*p = compiled
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p Pattern) MarshalYAML() (any, error) {
	return p.source(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Pattern) UnmarshalYAML(unmarshal func(any) error) error {
	var src string
	if err := unmarshal(&src); err != nil {
		return err
	}
	compiled, err := NewPattern(src)
	if err != nil {
		return err
	}
	*p = compiled
	return nil
}

// EdgeDefinition is a closed tagged union describing what kind of traversal
// an Edge represents. Dispatch is always a type switch; there is no open
// inheritance hierarchy.
type EdgeDefinition interface {
	edgeDefinitionTag() string
}

// DoorEdge is emitted by the generator for a door/gate/large-door wall whose
// LocationConfig advertises an "Open" action.
type DoorEdge struct {
	ID       uint32
	Position Coordinate
	Action   Pattern
}

func (DoorEdge) edgeDefinitionTag() string { return "Door" }

// GameObjectEdge represents a scripted interaction with a placed object
// (e.g. a ladder or a shortcut), sourced from the custom-edges sidecar.
type GameObjectEdge struct {
	ID       uint32
	Position Coordinate
	Action   Pattern
}

func (GameObjectEdge) edgeDefinitionTag() string { return "GameObject" }

// SpellTeleportEdge represents a spellbook teleport.
type SpellTeleportEdge struct {
	Spell string
}

func (SpellTeleportEdge) edgeDefinitionTag() string { return "SpellTeleport" }

// ItemTeleportEdge represents a teleport triggered by using/operating an
// inventory item.
type ItemTeleportEdge struct {
	Item   Pattern
	Action Pattern
}

func (ItemTeleportEdge) edgeDefinitionTag() string { return "ItemTeleport" }

// Compare is a comparison operator used by Varp/Varbit requirements. The
// convention is compare.Test(expected, observed): LT means "expected <
// observed", i.e. the observed value must exceed expected.
type Compare string

const (
	CompareLT  Compare = "LT"
	CompareLE  Compare = "LE"
	CompareEQ  Compare = "EQ"
	CompareGE  Compare = "GE"
	CompareGT  Compare = "GT"
	CompareNOT Compare = "NOT"
)

// Test applies the comparison as expected OP observed.
func (c Compare) Test(expected, observed int32) bool {
	switch c {
	case CompareLT:
		return expected < observed
	case CompareLE:
		return expected <= observed
	case CompareEQ:
		return expected == observed
	case CompareGE:
		return expected >= observed
	case CompareGT:
		return expected > observed
	case CompareNOT:
		return expected != observed
	default:
		return false
	}
}

// RequirementDefinition is a closed tagged union gating edge usability
// against a GameState snapshot.
type RequirementDefinition interface {
	requirementTag() string
	IsMet(state GameState) bool
}

// MembershipRequirement passes iff the querying account is a member.
type MembershipRequirement struct{}

func (MembershipRequirement) requirementTag() string { return "Membership" }

// IsMet implements RequirementDefinition.
func (MembershipRequirement) IsMet(state GameState) bool { return state.Member }

// SkillRequirement passes iff the account's level in Skill is at least
// Level. Skill names are compared upper-case; an absent skill defaults to
// level 1.
type SkillRequirement struct {
	Skill string
	Level uint8
}

func (SkillRequirement) requirementTag() string { return "Skill" }

// IsMet implements RequirementDefinition.
func (r SkillRequirement) IsMet(state GameState) bool {
	level, ok := state.SkillLevels[strings.ToUpper(r.Skill)]
	if !ok {
		level = 1
	}
	return level >= r.Level
}

// ItemRequirement passes iff the sum of quantities across every inventory
// entry whose name matches Item is at least Quantity.
type ItemRequirement struct {
	Item     Pattern
	Quantity uint32
}

func (ItemRequirement) requirementTag() string { return "Item" }

// IsMet implements RequirementDefinition.
func (r ItemRequirement) IsMet(state GameState) bool {
	var total uint32
	for name, quantity := range state.Items {
		if r.Item.Regexp != nil && r.Item.MatchString(name) {
			total += quantity
		}
	}
	return total >= r.Quantity
}

// VarpRequirement passes iff Compare.Test(Value, observedVarp) holds.
type VarpRequirement struct {
	Index   uint32
	Value   int32
	Compare Compare
}

func (VarpRequirement) requirementTag() string { return "Varp" }

// IsMet implements RequirementDefinition.
func (r VarpRequirement) IsMet(state GameState) bool {
	return r.Compare.Test(r.Value, state.Varps[r.Index])
}

// VarbitRequirement passes iff Compare.Test(Value, observedVarbit) holds.
type VarbitRequirement struct {
	Index   uint32
	Value   int32
	Compare Compare
}

func (VarbitRequirement) requirementTag() string { return "Varbit" }

// IsMet implements RequirementDefinition.
func (r VarbitRequirement) IsMet(state GameState) bool {
	return r.Compare.Test(r.Value, state.Varbits[r.Index])
}

// RequirementsMet reports whether every requirement in reqs evaluates true
// against state. An empty slice is vacuously satisfied.
func RequirementsMet(reqs []RequirementDefinition, state GameState) bool {
	for _, req := range reqs {
		if !req.IsMet(state) {
			return false
		}
	}
	return true
}

// GameState is a declarative snapshot of the querying account used to gate
// edge traversal. Every field defaults to its zero value if absent.
type GameState struct {
	Member      bool
	SkillLevels map[string]uint8
	Items       map[string]uint32
	Varps       map[uint32]int32
	Varbits     map[uint32]int32
}

// NewGameState returns a GameState with initialized, empty maps.
func NewGameState() GameState {
	return GameState{
		SkillLevels: make(map[string]uint8),
		Items:       make(map[string]uint32),
		Varps:       make(map[uint32]int32),
		Varbits:     make(map[uint32]int32),
	}
}

// --- wire envelopes shared by the CBOR NavGrid format and the YAML
// custom-edges sidecar. Both codecs serialize the tagged unions above as a
// record carrying a "type" discriminator plus whichever fields that variant
// needs, matching the field names in the specification.

type edgeDefinitionEnvelope struct {
	Type     string     `cbor:"type" yaml:"type"`
	ID       uint32     `cbor:"id,omitempty" yaml:"id,omitempty"`
	Position Coordinate `cbor:"position,omitempty" yaml:"position,omitempty"`
	Action   string     `cbor:"action,omitempty" yaml:"action,omitempty"`
	Spell    string     `cbor:"spell,omitempty" yaml:"spell,omitempty"`
	Item     string     `cbor:"item,omitempty" yaml:"item,omitempty"`
}

func encodeEdgeDefinition(def EdgeDefinition) (edgeDefinitionEnvelope, error) {
	switch d := def.(type) {
	case DoorEdge:
		return edgeDefinitionEnvelope{Type: "Door", ID: d.ID, Position: d.Position, Action: d.Action.source()}, nil
	case GameObjectEdge:
		return edgeDefinitionEnvelope{Type: "GameObject", ID: d.ID, Position: d.Position, Action: d.Action.source()}, nil
	case SpellTeleportEdge:
		return edgeDefinitionEnvelope{Type: "SpellTeleport", Spell: d.Spell}, nil
	case ItemTeleportEdge:
		return edgeDefinitionEnvelope{Type: "ItemTeleport", Item: d.Item.source(), Action: d.Action.source()}, nil
	default:
		return edgeDefinitionEnvelope{}, fmt.Errorf("worldnav: unknown edge definition %T", def)
	}
}

func decodeEdgeDefinition(env edgeDefinitionEnvelope) (EdgeDefinition, error) {
	switch env.Type {
	case "Door":
		action, err := NewPattern(env.Action)
		if err != nil {
			return nil, err
		}
		return DoorEdge{ID: env.ID, Position: env.Position, Action: action}, nil
	case "GameObject":
		action, err := NewPattern(env.Action)
		if err != nil {
			return nil, err
		}
		return GameObjectEdge{ID: env.ID, Position: env.Position, Action: action}, nil
	case "SpellTeleport":
		return SpellTeleportEdge{Spell: env.Spell}, nil
	case "ItemTeleport":
		item, err := NewPattern(env.Item)
		if err != nil {
			return nil, err
		}
		action, err := NewPattern(env.Action)
		if err != nil {
			return nil, err
		}
		return ItemTeleportEdge{Item: item, Action: action}, nil
	default:
		return nil, fmt.Errorf("worldnav: unknown edge definition type %q", env.Type)
	}
}

type requirementEnvelope struct {
	Type     string  `cbor:"type" yaml:"type"`
	Skill    string  `cbor:"skill,omitempty" yaml:"skill,omitempty"`
	Level    uint8   `cbor:"level,omitempty" yaml:"level,omitempty"`
	Item     string  `cbor:"item,omitempty" yaml:"item,omitempty"`
	Quantity uint32  `cbor:"quantity,omitempty" yaml:"quantity,omitempty"`
	Index    uint32  `cbor:"index,omitempty" yaml:"index,omitempty"`
	Value    int32   `cbor:"value,omitempty" yaml:"value,omitempty"`
	Compare  Compare `cbor:"compare,omitempty" yaml:"compare,omitempty"`
}

func encodeRequirement(req RequirementDefinition) (requirementEnvelope, error) {
	switch r := req.(type) {
	case MembershipRequirement:
		return requirementEnvelope{Type: "Membership"}, nil
	case SkillRequirement:
		return requirementEnvelope{Type: "Skill", Skill: r.Skill, Level: r.Level}, nil
	case ItemRequirement:
		return requirementEnvelope{Type: "Item", Item: r.Item.source(), Quantity: r.Quantity}, nil
	case VarpRequirement:
		return requirementEnvelope{Type: "Varp", Index: r.Index, Value: r.Value, Compare: r.Compare}, nil
	case VarbitRequirement:
		return requirementEnvelope{Type: "Varbit", Index: r.Index, Value: r.Value, Compare: r.Compare}, nil
	default:
		return requirementEnvelope{}, fmt.Errorf("worldnav: unknown requirement %T", req)
	}
}

func decodeRequirement(env requirementEnvelope) (RequirementDefinition, error) {
	switch env.Type {
	case "Membership":
		return MembershipRequirement{}, nil
	case "Skill":
		return SkillRequirement{Skill: env.Skill, Level: env.Level}, nil
	case "Item":
		item, err := NewPattern(env.Item)
		if err != nil {
			return nil, err
		}
		return ItemRequirement{Item: item, Quantity: env.Quantity}, nil
	case "Varp":
		return VarpRequirement{Index: env.Index, Value: env.Value, Compare: env.Compare}, nil
	case "Varbit":
		return VarbitRequirement{Index: env.Index, Value: env.Value, Compare: env.Compare}, nil
	default:
		return nil, fmt.Errorf("worldnav: unknown requirement type %q", env.Type)
	}
}
