package link

// Stringable pairs a link with its string form. It is used directly as a
// command-line option value.
type Stringable struct {
	Link Link
	Text string // the form it was parsed from, or Encode(Link)
}

// Parse decodes s, keeping s itself as the string form
func Parse(s string) Stringable {
	return Stringable{Link: Decode(s), Text: s}
}

// FromLink builds a Stringable with the encoded form of l
func FromLink(l Link) Stringable {
	return Stringable{Link: l, Text: Encode(l)}
}

func (s Stringable) String() string {
	return s.Text
}

// UnmarshalFlag implements flags.Unmarshaler
func (s *Stringable) UnmarshalFlag(value string) error {
	*s = Parse(value)
	return nil
}

// MarshalFlag implements flags.Marshaler
func (s Stringable) MarshalFlag() (string, error) {
	return s.Text, nil
}
