// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package agent

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// AnonymousSender is the sender identifier carried by unsigned requests.
const AnonymousSender = "anonymous"

// Identity is a credential capable of signing requests. The zero credential
// is the anonymous identity, which signs nothing.
type Identity interface {
	// Sender returns the principal identifier derived from the credential.
	Sender() string

	// Sign signs the given message. The anonymous identity returns a nil
	// signature.
	Sign(message []byte) ([]byte, error)

	// PublicKey returns the public key bytes, nil for the anonymous identity.
	PublicKey() []byte
}

// anonymous is the default no-credential identity.
type anonymous struct{}

// enforce compilation error
var _ Identity = anonymous{}

// Anonymous returns the default no-credential identity.
func Anonymous() Identity {
	return anonymous{}
}

func (anonymous) Sender() string { return AnonymousSender }

func (anonymous) Sign([]byte) ([]byte, error) { return nil, nil }

func (anonymous) PublicKey() []byte { return nil }

// Ed25519Identity signs requests with an Ed25519 private key. Its sender
// identifier is self-authenticating: derived from the public key so the
// remote endpoint can verify the caller without a directory lookup.
type Ed25519Identity struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
	sender     string
}

// enforce compilation error
var _ Identity = (*Ed25519Identity)(nil)

// NewEd25519Identity generates a fresh Ed25519 identity.
func NewEd25519Identity() (*Ed25519Identity, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate identity key: %w", err)
	}
	return newEd25519Identity(publicKey, privateKey), nil
}

// Ed25519IdentityFromSeed derives a deterministic Ed25519 identity from the
// given 32-byte seed.
func Ed25519IdentityFromSeed(seed []byte) (*Ed25519Identity, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid seed size: expected=(%d) actual=(%d)", ed25519.SeedSize, len(seed))
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	return newEd25519Identity(privateKey.Public().(ed25519.PublicKey), privateKey), nil
}

func newEd25519Identity(publicKey ed25519.PublicKey, privateKey ed25519.PrivateKey) *Ed25519Identity {
	digest := sha256.Sum256(publicKey)
	return &Ed25519Identity{
		privateKey: privateKey,
		publicKey:  publicKey,
		sender:     hex.EncodeToString(digest[:16]),
	}
}

// Sender returns the principal identifier derived from the public key.
func (x *Ed25519Identity) Sender() string {
	return x.sender
}

// Sign signs the given message with the private key.
func (x *Ed25519Identity) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(x.privateKey, message), nil
}

// PublicKey returns the raw public key bytes.
func (x *Ed25519Identity) PublicKey() []byte {
	return []byte(x.publicKey)
}

// Verify reports whether the signature over the message was produced by the
// identity holding the given public key.
func Verify(publicKey, message, signature []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}
