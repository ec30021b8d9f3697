package token

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeedHex = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

func newTestPair(t *testing.T) (*Issuer, *Verifier) {
	issuer, err := NewIssuer(testSeedHex)
	require.NoError(t, err)
	verifier, err := NewVerifier(issuer.PublicKeyHex())
	require.NoError(t, err)
	return issuer, verifier
}

func issueTestToken(t *testing.T, issuer *Issuer) (string, uuid.UUID) {
	ticketID := uuid.New()
	signed, err := issuer.Issue(
		ticketID,
		"Ada Lovelace",
		EventInfo{ID: uuid.New(), Name: "Analytical Engine Live"},
		SeatInfo{ID: uuid.New(), Number: "12"},
		RowInfo{ID: uuid.New(), Name: "B"},
		AreaInfo{ID: uuid.New(), Name: "Main Floor"},
	)
	require.NoError(t, err)
	return signed, ticketID
}

func TestIssueDecodeRoundTrip(t *testing.T) {
	issuer, verifier := newTestPair(t)

	ticketID := uuid.New()
	event := EventInfo{ID: uuid.New(), Name: "Analytical Engine Live"}
	seat := SeatInfo{ID: uuid.New(), Number: "12"}
	row := RowInfo{ID: uuid.New(), Name: "B"}
	area := AreaInfo{ID: uuid.New(), Name: "Main Floor"}

	signed, err := issuer.Issue(ticketID, "Ada Lovelace", event, seat, row, area)
	require.NoError(t, err)

	payload := verifier.Decode(signed)
	require.NotNil(t, payload)
	assert.Equal(t, ticketID, payload.TicketID)
	assert.Equal(t, "Ada Lovelace", payload.VisitorName)
	assert.Equal(t, event, payload.Event)
	assert.Equal(t, seat, payload.Seat)
	assert.Equal(t, row, payload.Row)
	assert.Equal(t, area, payload.Area)
	assert.Greater(t, payload.Timestamp, int64(0))
}

func TestDecodeRejectsWrongKey(t *testing.T) {
	issuer, _ := newTestPair(t)
	signed, _ := issueTestToken(t, issuer)

	otherSeed := strings.Repeat("ab", 32)
	otherIssuer, err := NewIssuer(otherSeed)
	require.NoError(t, err)
	otherVerifier, err := NewVerifier(otherIssuer.PublicKeyHex())
	require.NoError(t, err)

	assert.Nil(t, otherVerifier.Decode(signed))
}

func TestDecodeRejectsTamperedBytes(t *testing.T) {
	issuer, verifier := newTestPair(t)
	signed, _ := issueTestToken(t, issuer)

	raw, err := base64.RawURLEncoding.DecodeString(signed)
	require.NoError(t, err)

	// Flip a byte in the payload region, the middle, and the
	// signature region.
	for _, pos := range []int{4, len(raw) / 2, len(raw) - 3} {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[pos] ^= 0xff
		forged := base64.RawURLEncoding.EncodeToString(tampered)
		assert.Nil(t, verifier.Decode(forged), "flip at %d accepted", pos)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	issuer, verifier := newTestPair(t)
	signed, _ := issueTestToken(t, issuer)

	assert.Nil(t, verifier.Decode(""))
	assert.Nil(t, verifier.Decode("not base64 %%%"))
	assert.Nil(t, verifier.Decode(base64.RawURLEncoding.EncodeToString([]byte("not cbor"))))
	assert.Nil(t, verifier.Decode(signed[:len(signed)/2]))
}

func TestKeyValidation(t *testing.T) {
	_, err := NewIssuer("zz")
	assert.Error(t, err)
	_, err = NewIssuer("abcd")
	assert.Error(t, err)
	_, err = NewVerifier("abcd")
	assert.Error(t, err)
	_, err = NewVerifier("not hex")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	issuer, _ := newTestPair(t)
	signed, _ := issueTestToken(t, issuer)

	pngHeader := []byte{0x89, 'P', 'N', 'G'}

	image := Render(signed)
	assert.Equal(t, pngHeader, image[:4])

	// Far beyond QR capacity: encoding fails, placeholder comes back.
	oversized := strings.Repeat("x", 8000)
	assert.Equal(t, placeholderPNG, Render(oversized))
}
