package modular

// Need is one declared dependency slot.
type Need struct {
	key      Key
	optional bool
	assign   func(Module) bool
}

func (n Need) Key() Key {
	return n.key
}

func (n Need) Optional() bool {
	return n.optional
}

// Slot fills *dst with the module registered under KeyOf[T]. A slot keyed
// by Module itself is a marker and stays untouched.
func Slot[T any](dst *T) Need {
	return Need{
		key: KeyOf[T](),
		assign: func(m Module) bool {
			v, ok := m.(T)
			if ok {
				*dst = v
			}
			return ok
		},
	}
}

// OptionalSlot is a Slot that is left untouched when nothing is registered
// under its key.
func OptionalSlot[T any](dst *T) Need {
	n := Slot(dst)
	n.optional = true
	return n
}

// Needs concatenates need lists, typically an embedded module's Needs with
// the embedding module's own slots.
func Needs(groups ...[]Need) []Need {
	var total int
	for _, g := range groups {
		total += len(g)
	}
	out := make([]Need, 0, total)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func (m *Manager) inject() error {
	for _, mod := range m.Modules() {
		injectable, ok := mod.(Injectable)
		if !ok {
			continue
		}

		for _, need := range injectable.Needs() {
			if need.key == nil || need.key == moduleKey {
				continue
			}

			dep, found := m.lookup(need.key)
			if !found {
				if need.optional {
					m.logger.Debug("optional dependency absent",
						"module", mod.Name(),
						"dependency", need.key.String(),
					)
					continue
				}
				return ErrDependencyMissing.
					WithDetail("module", mod.Name()).
					WithDetail("dependency", need.key.String())
			}

			if !need.assign(dep) {
				return ErrDependencyMismatch.
					WithDetail("module", mod.Name()).
					WithDetail("dependency", need.key.String()).
					WithDetail("actual", dep.Name())
			}
		}
	}
	return nil
}
