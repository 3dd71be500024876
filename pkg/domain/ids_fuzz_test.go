package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseProviderID checks that parsing never panics and that accepted
// values round-trip unchanged.
func FuzzParseProviderID(f *testing.F) {
	f.Add("")
	f.Add("provider-123")
	f.Add("'; DROP TABLE providers;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("provider-123\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseProviderID(input)
		if err != nil {
			return
		}
		roundTrip, err := ParseProviderID(id.String())
		if err != nil {
			t.Errorf("valid ID failed round-trip: %v", err)
		}
		if roundTrip != id {
			t.Error("round-trip changed ID value")
		}
		if !utf8.ValidString(input) {
			t.Error("non-UTF8 input was accepted")
		}
	})
}
