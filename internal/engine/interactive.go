package engine

// Target names a clickable slot of the room. The string value is the exact
// mesh node name the asset must use.
type Target string

const (
	TargetNone           Target = ""
	TargetAbout          Target = "About-btn"
	TargetContact        Target = "Contact-btn"
	TargetCV             Target = "CV-btn"
	TargetGitHub         Target = "GitHub-btn"
	TargetLinkedIn       Target = "LinkedIn-btn"
	TargetComputerScreen Target = "ComputerScreen-btn"
	TargetTVScreen       Target = "TVScreen-btn"
)

// Targets is the closed enumeration, in declaration order.
var Targets = []Target{
	TargetAbout,
	TargetContact,
	TargetCV,
	TargetGitHub,
	TargetLinkedIn,
	TargetComputerScreen,
	TargetTVScreen,
}

// TagInteractive marks nodes that matched a Target during loading.
const TagInteractive = "interactive"

// ParseTarget matches name exactly against the enumeration.
func ParseTarget(name string) (Target, bool) {
	for _, t := range Targets {
		if string(t) == name {
			return t, true
		}
	}
	return TargetNone, false
}

// IsScreen reports whether t is one of the two screen slots.
func (t Target) IsScreen() bool {
	return t == TargetComputerScreen || t == TargetTVScreen
}

func (t Target) String() string {
	if t == TargetNone {
		return "none"
	}
	return string(t)
}

// InteractiveObject is a back-reference from a Target to the node carrying
// it. The scene owns the node; Hovered is written only by the pointer tracker.
type InteractiveObject struct {
	Object  *GameObject
	Name    string
	Target  Target
	Hovered bool
}

// Interactives is the read-only lookup built once after loading.
type Interactives struct {
	byName map[string]*InteractiveObject
	order  []*InteractiveObject
}

func NewInteractives() *Interactives {
	return &Interactives{byName: make(map[string]*InteractiveObject)}
}

func (m *Interactives) Add(obj *InteractiveObject) {
	if _, exists := m.byName[obj.Name]; exists {
		return
	}
	m.byName[obj.Name] = obj
	m.order = append(m.order, obj)
}

func (m *Interactives) Get(name string) (*InteractiveObject, bool) {
	if m == nil {
		return nil, false
	}
	obj, ok := m.byName[name]
	return obj, ok
}

func (m *Interactives) ByTarget(t Target) (*InteractiveObject, bool) {
	return m.Get(string(t))
}

// ByObject finds the entry whose node is g.
func (m *Interactives) ByObject(g *GameObject) (*InteractiveObject, bool) {
	if m == nil || g == nil {
		return nil, false
	}
	obj, ok := m.Get(g.Name)
	if !ok || obj.Object != g {
		return nil, false
	}
	return obj, true
}

// All returns the entries in discovery order.
func (m *Interactives) All() []*InteractiveObject {
	if m == nil {
		return nil
	}
	return m.order
}

func (m *Interactives) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Missing lists the targets that have no entry.
func (m *Interactives) Missing() []Target {
	var missing []Target
	for _, t := range Targets {
		if _, ok := m.ByTarget(t); !ok {
			missing = append(missing, t)
		}
	}
	return missing
}
