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

package actor

// Status describes the anonymous-creation step of a handle, never its
// authentication: a handle can be StatusSuccess and unauthenticated.
type Status int

const (
	// StatusInitializing means the anonymous actor is under construction.
	StatusInitializing Status = iota
	// StatusSuccess means the anonymous actor exists.
	StatusSuccess
	// StatusError means initialization or a later authentication failed.
	StatusError
)

// String returns the text representation of the status.
func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "Initializing"
	case StatusSuccess:
		return "Success"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Snapshot is the immutable view of a handle's state published on its event
// stream after every state change.
type Snapshot struct {
	// Status is the anonymous-creation status.
	Status Status
	// Authenticated is true once an identity has been attached, independent
	// of Status.
	Authenticated bool
	// LastError is the last initialization or authentication failure.
	LastError error
	// Actor is the current exposed call surface, nil unless Status is
	// StatusSuccess (or after a failed authentication, where the anonymous
	// actor is retained).
	Actor Actor
}

// IsInitializing reports whether the anonymous actor is under construction.
func (s Snapshot) IsInitializing() bool { return s.Status == StatusInitializing }

// IsSuccess reports whether the anonymous actor exists. It does not mean
// "ready for authenticated calls"; that is Authenticated's job.
func (s Snapshot) IsSuccess() bool { return s.Status == StatusSuccess }

// IsError reports whether the handle is in the error state.
func (s Snapshot) IsError() bool { return s.Status == StatusError }
