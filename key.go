package pgfplot

// Key is one option in a picture, axis, or plot option list. Keys carry a
// canonical name used for replacement and the exact text written into the
// rendered markup.
type Key struct {
	canon string
	text  string
}

// CustomKey builds an option the library does not model. The name and value
// are written verbatim into the option list with no validation; malformed
// content surfaces later as an engine failure, not here. An empty value
// renders the bare name.
func CustomKey(name, value string) Key {
	text := name
	if value != "" {
		text = name + "=" + value
	}
	return Key{canon: name, text: text}
}

// Name returns the canonical name used for replacement within a key set.
func (k Key) Name() string { return k.canon }

func (k Key) String() string { return k.text }

// keySet keeps options in insertion order. Adding a key whose canonical name
// is already present removes the old entry and appends the new one at the
// end, so a key set never holds two entries with the same name.
type keySet struct {
	keys []Key
}

func (s *keySet) add(k Key) {
	for i := range s.keys {
		if s.keys[i].canon == k.canon {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	s.keys = append(s.keys, k)
}

func (s *keySet) list() []Key {
	out := make([]Key, len(s.keys))
	copy(out, s.keys)
	return out
}
