package token

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// EventInfo, SeatInfo, RowInfo and AreaInfo mirror the denormalized
// ticket fields so an offline scanner can show the visitor to a seat
// without any lookup. Integer keys keep the QR payload compact.
type EventInfo struct {
	ID   uuid.UUID `cbor:"1,keyasint"`
	Name string    `cbor:"2,keyasint"`
}

type SeatInfo struct {
	ID     uuid.UUID `cbor:"1,keyasint"`
	Number string    `cbor:"2,keyasint"`
}

type RowInfo struct {
	ID   uuid.UUID `cbor:"1,keyasint"`
	Name string    `cbor:"2,keyasint"`
}

type AreaInfo struct {
	ID   uuid.UUID `cbor:"1,keyasint"`
	Name string    `cbor:"2,keyasint"`
}

// Payload is the signed portion of a ticket token. The Ed25519
// signature is computed over its canonical CBOR encoding, so the field
// keys are part of the wire contract and must never be renumbered.
type Payload struct {
	TicketID    uuid.UUID `cbor:"1,keyasint"`
	Timestamp   int64     `cbor:"2,keyasint"`
	VisitorName string    `cbor:"3,keyasint"`
	Event       EventInfo `cbor:"4,keyasint"`
	Seat        SeatInfo  `cbor:"5,keyasint"`
	Row         RowInfo   `cbor:"6,keyasint"`
	Area        AreaInfo  `cbor:"7,keyasint"`
}

// envelope is what actually rides in the QR code: the payload plus a
// hex signature, CBOR-encoded and then base64url-encoded.
type envelope struct {
	Payload   Payload `cbor:"1,keyasint"`
	Signature string  `cbor:"2,keyasint"`
}

var encMode cbor.EncMode

func init() {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	encMode = mode
}

// canonicalBytes is the single canonicalization point shared by signing
// and verification. Core deterministic encoding guarantees issuer and
// verifier produce identical bytes for equal payloads.
func canonicalBytes(p *Payload) ([]byte, error) {
	return encMode.Marshal(p)
}

type Issuer struct {
	privateKey ed25519.PrivateKey
}

// NewIssuer builds an issuer from a hex-encoded Ed25519 seed.
func NewIssuer(seedHex string) (*Issuer, error) {
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("invalid signing seed: %v", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("signing seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return &Issuer{privateKey: ed25519.NewKeyFromSeed(seed)}, nil
}

// PublicKeyHex returns the verification key for distribution to
// inspector devices.
func (i *Issuer) PublicKeyHex() string {
	return hex.EncodeToString(i.privateKey.Public().(ed25519.PublicKey))
}

// Issue signs a fresh payload for the ticket and returns the complete
// QR string. The timestamp is stamped here, in unix milliseconds.
func (i *Issuer) Issue(ticketID uuid.UUID, visitorName string, event EventInfo, seat SeatInfo, row RowInfo, area AreaInfo) (string, error) {
	payload := Payload{
		TicketID:    ticketID,
		Timestamp:   time.Now().UnixMilli(),
		VisitorName: visitorName,
		Event:       event,
		Seat:        seat,
		Row:         row,
		Area:        area,
	}

	signed, err := canonicalBytes(&payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode token payload: %v", err)
	}
	signature := ed25519.Sign(i.privateKey, signed)

	wrapped, err := encMode.Marshal(envelope{
		Payload:   payload,
		Signature: hex.EncodeToString(signature),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token: %v", err)
	}

	return base64.RawURLEncoding.EncodeToString(wrapped), nil
}

type Verifier struct {
	publicKey ed25519.PublicKey
}

// NewVerifier builds a verifier from a hex-encoded Ed25519 public key.
func NewVerifier(publicKeyHex string) (*Verifier, error) {
	key, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid verification key: %v", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("verification key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}
	return &Verifier{publicKey: ed25519.PublicKey(key)}, nil
}

// Decode parses and verifies a presented token. A forged, damaged or
// truncated code returns nil rather than an error so a scanning loop
// never stops on bad input; the reason is logged for operators.
func (v *Verifier) Decode(token string) *Payload {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		log.Printf("token: rejected malformed base64: %v", err)
		return nil
	}

	var wrapped envelope
	if err := cbor.Unmarshal(raw, &wrapped); err != nil {
		log.Printf("token: rejected corrupt envelope: %v", err)
		return nil
	}

	signature, err := hex.DecodeString(wrapped.Signature)
	if err != nil {
		log.Printf("token: rejected malformed signature: %v", err)
		return nil
	}

	signed, err := canonicalBytes(&wrapped.Payload)
	if err != nil {
		log.Printf("token: failed to canonicalize payload: %v", err)
		return nil
	}

	if !ed25519.Verify(v.publicKey, signed, signature) {
		log.Printf("token: rejected invalid signature for ticket %s", wrapped.Payload.TicketID)
		return nil
	}

	return &wrapped.Payload
}
