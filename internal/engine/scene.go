package engine

// Scene is an arena of GameObjects. Objects are appended once and addressed by
// Handle; the room never removes or recreates nodes mid-session, so the arena
// only supports wholesale teardown through Clear.
type Scene struct {
	Name        string
	GameObjects []*GameObject
	byName      map[string]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		byName:      make(map[string]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) Handle {
	if s.byName == nil {
		s.byName = make(map[string]*GameObject)
	}
	s.GameObjects = append(s.GameObjects, g)
	g.Handle = Handle(len(s.GameObjects))
	g.Scene = s
	// First node wins on duplicate names, matching a depth-first lookup.
	if _, exists := s.byName[g.Name]; !exists {
		s.byName[g.Name] = g
	}
	return g.Handle
}

// Get resolves a handle. It returns nil for the zero handle and for handles
// that belong to a cleared or different scene.
func (s *Scene) Get(h Handle) *GameObject {
	if h == 0 || int(h) > len(s.GameObjects) {
		return nil
	}
	return s.GameObjects[h-1]
}

func (s *Scene) FindByName(name string) *GameObject {
	return s.byName[name]
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// Traverse visits every object in arena order.
func (s *Scene) Traverse(fn func(g *GameObject)) {
	for _, g := range s.GameObjects {
		fn(g)
	}
}

// Roots returns the objects without a parent.
func (s *Scene) Roots() []*GameObject {
	var roots []*GameObject
	for _, g := range s.GameObjects {
		if g.Parent == nil {
			roots = append(roots, g)
		}
	}
	return roots
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}

// Clear drops every object. Handles issued before Clear no longer resolve.
func (s *Scene) Clear() {
	for _, g := range s.GameObjects {
		g.Scene = nil
	}
	s.GameObjects = s.GameObjects[:0]
	s.byName = make(map[string]*GameObject)
}
