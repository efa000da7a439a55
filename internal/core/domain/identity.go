package domain

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/zerr"
)

// GUID is a 128-bit unique identifier stored in its printed byte order
// (Data1, Data2 and Data3 big-endian, then the 8 bytes of Data4).
type GUID [16]byte

// ParseGUID parses a GUID in dashed, braced or bare 32 hex digit form.
func ParseGUID(s string) (GUID, error) {
	raw := strings.TrimSpace(s)
	if len(raw) != 32 && len(raw) != 36 && len(raw) != 38 {
		return GUID{}, zerr.With(ErrInvalidGUID, "guid", s)
	}

	u, err := uuid.Parse(raw)
	if err != nil {
		return GUID{}, zerr.With(zerr.Wrap(err, ErrInvalidGUID.Error()), "guid", s)
	}
	return GUID(u), nil
}

// MustParseGUID is like ParseGUID but panics on malformed input.
func MustParseGUID(s string) GUID {
	g, err := ParseGUID(s)
	if err != nil {
		panic(err)
	}
	return g
}

// IsZero reports whether the GUID is all zeros.
func (g GUID) IsZero() bool {
	return g == GUID{}
}

// String returns the canonical 8-4-4-4-12 form.
func (g GUID) String() string {
	h := strings.ToUpper(hex.EncodeToString(g[:]))
	return h[0:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32]
}

// Key returns the symbol server index directory name for this GUID and age:
// the GUID as 32 upper-case hex digits followed by the age in upper-case hex.
func (g GUID) Key(age uint32) string {
	return strings.ToUpper(hex.EncodeToString(g[:])) + strings.ToUpper(strconv.FormatUint(uint64(age), 16))
}

// SymbolIdentity names one symbol file. UniqueID and Age determine the content;
// FileName alone does not.
type SymbolIdentity struct {
	FileName string
	UniqueID GUID
	Age      uint32
}

// NewSymbolIdentity parses the textual parts of an identity.
// The age is read as decimal unless it carries a 0x prefix.
func NewSymbolIdentity(fileName, guid, age string) (SymbolIdentity, error) {
	if strings.TrimSpace(fileName) == "" {
		return SymbolIdentity{}, ErrMissingFileName
	}

	id, err := ParseGUID(guid)
	if err != nil {
		return SymbolIdentity{}, err
	}

	n, err := strconv.ParseUint(age, 0, 32)
	if err != nil {
		return SymbolIdentity{}, zerr.With(zerr.Wrap(err, ErrInvalidAge.Error()), "age", age)
	}

	return SymbolIdentity{FileName: fileName, UniqueID: id, Age: uint32(n)}, nil
}

// CacheKey returns the identity-keyed directory name, or "" when the
// UniqueID is zero and identity-keyed placement is impossible.
func (s SymbolIdentity) CacheKey() string {
	if s.UniqueID.IsZero() {
		return ""
	}
	return s.UniqueID.Key(s.Age)
}

// String renders the identity for logs.
func (s SymbolIdentity) String() string {
	return fmt.Sprintf("%s %s/%d", s.FileName, s.UniqueID, s.Age)
}
