package localstore

// CheckKey returns an error if k isn't a string or if k == "".
// The type is checked before the length.
func CheckKey(k any) error {
	s, ok := k.(string)
	if !ok {
		return &Error{Kind: KindKeyType, Key: k}
	}
	if s == "" {
		return &Error{Kind: KindKeyEmpty, Key: s}
	}
	return nil
}
