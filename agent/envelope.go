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
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	// ErrRejected is returned when the remote endpoint rejects a call.
	ErrRejected = errors.New("call rejected by the endpoint")

	// ErrMalformedReply is returned when the endpoint reply cannot be decoded.
	ErrMalformedReply = errors.New("malformed endpoint reply")
)

var (
	cborEnc = mustEncMode()
	cborDec = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	enc, err := cbor.EncOptions{
		Sort:        cbor.SortNone,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeUnixDynamic,
	}.EncMode()
	if err != nil {
		panic(err)
	}
	return enc
}

func mustDecMode() cbor.DecMode {
	dec, err := cbor.DecOptions{
		MaxNestedLevels: 64,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8DecodeInvalid,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dec
}

// envelopeContent is the signed portion of a request envelope.
type envelopeContent struct {
	RequestType   string `cbor:"request_type"`
	Sender        string `cbor:"sender"`
	Nonce         []byte `cbor:"nonce"`
	IngressExpiry uint64 `cbor:"ingress_expiry"`
	CanisterID    string `cbor:"canister_id"`
	MethodName    string `cbor:"method_name"`
	Arg           []byte `cbor:"arg"`
}

// envelope is the CBOR frame sent to the endpoint. Anonymous requests carry
// neither public key nor signature.
type envelope struct {
	Content      envelopeContent `cbor:"content"`
	SenderPubkey []byte          `cbor:"sender_pubkey,omitempty"`
	SenderSig    []byte          `cbor:"sender_sig,omitempty"`
}

// replyEnvelope is the CBOR frame received from the endpoint.
type replyEnvelope struct {
	Status        string `cbor:"status"`
	Reply         *reply `cbor:"reply,omitempty"`
	RejectCode    uint64 `cbor:"reject_code,omitempty"`
	RejectMessage string `cbor:"reject_message,omitempty"`
}

type reply struct {
	Arg []byte `cbor:"arg"`
}

const statusReplied = "replied"

// encodeEnvelope signs the content with the given identity and returns the
// CBOR frame ready to be posted.
func encodeEnvelope(identity Identity, content envelopeContent) ([]byte, error) {
	signed, err := cborEnc.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request content: %w", err)
	}

	signature, err := identity.Sign(signed)
	if err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	frame := envelope{
		Content:      content,
		SenderPubkey: identity.PublicKey(),
		SenderSig:    signature,
	}

	encoded, err := cborEnc.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request envelope: %w", err)
	}
	return encoded, nil
}

// decodeReply unwraps the endpoint reply and returns the raw reply payload.
func decodeReply(body []byte) ([]byte, error) {
	var decoded replyEnvelope
	if err := cborDec.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	if decoded.Status != statusReplied {
		return nil, fmt.Errorf("%w: code=(%d) reason=(%s)", ErrRejected, decoded.RejectCode, decoded.RejectMessage)
	}
	if decoded.Reply == nil {
		return nil, fmt.Errorf("%w: missing reply payload", ErrMalformedReply)
	}
	return decoded.Reply.Arg, nil
}
